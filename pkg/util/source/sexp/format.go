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
package sexp

import (
	"strings"
)

// Formatter lays out S-Expressions across multiple lines such that, where
// possible, no line exceeds a given width.  A list which fits on the current
// line is written as is.  Otherwise, its head is written on the current line
// and each remaining element is written on its own (indented) line.
type Formatter struct {
	// Maximum desired width
	maxWidth uint
	// Number of spaces for each level of indentation
	indent uint
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, 2}
}

// Format a given S-Expression using this formatter.
func (p *Formatter) Format(sexp SExp) string {
	var text FormattedText
	//
	p.format(sexp, 0, &text)
	//
	return text.String()
}

func (p *Formatter) format(sexp SExp, level uint, text *FormattedText) {
	var (
		flat     = sexp.String(true)
		open     = "("
		close    = ")"
		elements []SExp
	)
	// Does it fit?
	if text.LineWidth()+uint(len(flat)) <= p.maxWidth {
		text.WriteString(flat)
		return
	}
	//
	switch s := sexp.(type) {
	case *List:
		elements = s.Elements
	case *Array:
		open, close, elements = "[", "]", s.Elements
	default:
		// Symbols cannot be split
		text.WriteString(flat)
		return
	}
	//
	text.WriteString(open)
	//
	for i, e := range elements {
		// The head of a list stays on the opening line
		if i != 0 || open != "(" {
			text.NewLine((level + 1) * p.indent)
		}
		//
		p.format(e, level+1, text)
	}
	//
	text.WriteString(close)
}

// FormattedText provides encapsulates the notion of formatted chunk of text.
type FormattedText struct {
	// Lines being written
	lines []string
}

func (p *FormattedText) String() string {
	return strings.Join(p.lines, "\n")
}

// NewLine starts a new line with a given amount of indentation.
func (p *FormattedText) NewLine(indent uint) {
	p.lines = append(p.lines, strings.Repeat(" ", int(indent)))
}

// LineWidth returns the width of the current line.
func (p *FormattedText) LineWidth() uint {
	var n = len(p.lines)
	//
	if n == 0 {
		return 0
	}
	// Width of last line
	return uint(len(p.lines[n-1]))
}

// MaxWidth returns the maximum width of any line in this formatted text block.
func (p *FormattedText) MaxWidth() uint {
	width := 0
	//
	for _, l := range p.lines {
		width = max(width, len(l))
	}
	//
	return uint(width)
}

// WriteString writes a string into the current line of this formatted text
// block.
func (p *FormattedText) WriteString(str string) {
	if len(p.lines) == 0 {
		p.lines = append(p.lines, str)
	} else {
		p.lines[len(p.lines)-1] += str
	}
}
