// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"fmt"
	"strings"
)

// Line is a single line of a source file, identified by its line number
// (counting from 1) and its offset within the file.
type Line struct {
	text   string
	start  int
	number int
}

func (p *Line) String() string {
	return p.text
}

// Number returns the line number, counting from 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the rune offset of this line within its file.
func (p *Line) Start() int {
	return p.start
}

// Length returns the number of runes in this line.
func (p *Line) Length() int {
	return len([]rune(p.text))
}

// File represents a named piece of source text, such as an expression given
// on the command line or a rule read from a rule file.
type File struct {
	filename string
	contents []rune
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes))}
}

// Filename returns the name of this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file as runes.
func (s *File) Contents() []rune {
	return s.contents
}

// Text returns the text covered by a given span of this file.
func (s *File) Text(span Span) string {
	return string(s.contents[span.start:span.end])
}

// SyntaxError constructs a syntax error over a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// Determine the line containing a given offset.  An offset at (or beyond) the
// end of the file belongs to the last line.
func (s *File) lineAt(offset int) Line {
	var (
		start  = 0
		number = 1
	)
	//
	for i := 0; i < min(offset, len(s.contents)); i++ {
		if s.contents[i] == '\n' {
			start, number = i+1, number+1
		}
	}
	//
	end := start
	for end < len(s.contents) && s.contents[end] != '\n' {
		end++
	}
	//
	return Line{string(s.contents[start:end]), start, number}
}

// SyntaxError reports malformed source text, along with the span of text
// responsible.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the source file containing the offending text.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the offending text.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", p.srcfile.filename, p.span.Start(), p.span.End(), p.msg)
}

// FirstEnclosingLine returns the line containing the start of the offending
// text.  Spans can cross lines, so this need not enclose the whole span.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.lineAt(p.span.start)
}

// Highlight renders the enclosing line of this error followed by a line of
// carets underneath the offending text.
func (p *SyntaxError) Highlight() string {
	var (
		line   = p.FirstEnclosingLine()
		offset = max(0, p.span.Start()-line.Start())
		width  = max(1, min(p.span.Length(), line.Length()-offset))
	)
	//
	return fmt.Sprintf("%s\n%s%s", line.String(), strings.Repeat(" ", offset), strings.Repeat("^", width))
}
