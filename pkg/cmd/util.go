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
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/config"
	"github.com/consensys/go-algebra/pkg/parser"
	"github.com/consensys/go-algebra/pkg/util/source"
	"github.com/consensys/go-algebra/pkg/util/source/sexp"
)

// Width assumed for output which is not going to a terminal.
const defaultTextWidth = 80

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or panic if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected signed integer, or panic if an error arises.
func getInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Report a fatal error and exit.
func fail(err error) {
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		printSyntaxError(serr)
	} else {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
	}
	//
	os.Exit(2)
}

// Load the configuration identified by the "--config" flag (if any), and
// configure the log level accordingly.  The "--context" flag (if the command
// has one) is then applied on top of the configured context.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(getString(cmd, "config"))
	if err != nil {
		fail(err)
	}
	// Configure log level
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(cfg.LogLevel())
	}
	//
	if cmd.Flags().Lookup("context") != nil {
		for _, binding := range getStringArray(cmd, "context") {
			if err := addContextBinding(cfg, binding); err != nil {
				fail(err)
			}
		}
		// Restore the case of operator names, and check properties
		if err := cfg.Validate(); err != nil {
			fail(err)
		}
	}
	//
	return cfg
}

// Add a binding of the form "op.property=bool" (e.g. "add.commutative=false")
// to the context of a given configuration.
func addContextBinding(cfg *config.Config, binding string) error {
	key, value, ok := strings.Cut(binding, "=")
	if !ok {
		return fmt.Errorf("invalid context binding %q (expected op.property=bool)", binding)
	}
	//
	op, prop, ok := strings.Cut(key, ".")
	if !ok {
		return fmt.Errorf("invalid context binding %q (expected op.property=bool)", binding)
	}
	//
	flag, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid context binding %q: %w", binding, err)
	}
	//
	if cfg.Simplify.Context == nil {
		cfg.Simplify.Context = make(map[string]map[string]bool)
	}
	//
	if cfg.Simplify.Context[op] == nil {
		cfg.Simplify.Context[op] = make(map[string]bool)
	}
	//
	cfg.Simplify.Context[op][prop] = flag
	//
	return nil
}

// Parse an expression given on the command line, either in infix notation or
// as an S-Expression.  Any syntax error is reported and causes an exit.
func readExpr(input string, lisp bool, maxDepth int) ast.Node {
	var (
		node ast.Node
		err  error
	)
	//
	if lisp {
		node, err = parser.ParseLisp(input)
	} else if n, serr := parser.ParseFile(source.NewSourceFile("expr", []byte(input)), uint(maxDepth)); serr != nil {
		err = serr
	} else {
		node = n
	}
	//
	if err != nil {
		fail(err)
	}
	//
	return node
}

// Render a node for output, either in infix notation or as an S-Expression
// laid out to fit the terminal.
func formatNode(node ast.Node, lisp bool) string {
	if lisp {
		return sexp.NewFormatter(textWidth()).Format(ast.Lisp(node))
	}
	//
	return node.String()
}

// Determine the width of the terminal, falling back to a default when output
// is not going to a terminal.
func textWidth() uint {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return uint(width)
		}
	}
	//
	return defaultTextWidth
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	// Print error + line number
	color.New(color.FgRed).Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), span.Start(), span.End(), err.Message())
	// Print line + highlight
	fmt.Println(err.Highlight())
}
