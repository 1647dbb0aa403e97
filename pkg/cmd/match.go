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
	"fmt"
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/rewrite"
)

var matchCmd = &cobra.Command{
	Use:   "match [flags] pattern expr",
	Short: "match a pattern against an expression.",
	Long: `Match a rule pattern against an expression, and print every way in
	which its wildcards can be bound.  The expression is flattened before
	matching, as it would be when applying a rule.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			cfg       = loadConfig(cmd)
			inputLisp = getFlag(cmd, "input-lisp")
			ctx       = cfg.Context()
			lhs       = ast.RemoveParens(readExpr(args[0], inputLisp, cfg.Simplify.MaxDepth))
			rhs       = ast.RemoveParens(readExpr(args[1], inputLisp, cfg.Simplify.MaxDepth))
		)
		//
		pattern, err := rewrite.NewPattern(lhs)
		if err != nil {
			fail(err)
		}
		//
		matches, err := pattern.Match(rewrite.Flatten(rhs, ctx), ctx)
		if err != nil {
			fail(err)
		}
		//
		if len(matches) == 0 {
			fmt.Println("no match")
			os.Exit(1)
		}
		//
		fmt.Println(matchTable(matches).Render())
	},
}

// Construct a table of matches, with one column per wildcard.
func matchTable(matches []rewrite.Match) table.Writer {
	var (
		tbl   = table.NewWriter()
		names []string
	)
	// Determine all wildcards bound
	for _, m := range matches {
		for name := range m {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	//
	slices.Sort(names)
	//
	tbl.SetStyle(table.StyleLight)
	// Wildcard names are case sensitive
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	//
	header := table.Row{"#"}
	for _, name := range names {
		header = append(header, name)
	}
	//
	tbl.AppendHeader(header)
	//
	for i, m := range matches {
		row := table.Row{i}
		//
		for _, name := range names {
			if node, ok := m[name]; ok {
				row = append(row, node.String())
			} else {
				row = append(row, "")
			}
		}
		//
		tbl.AppendRow(row)
	}
	//
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d match(es)", len(matches))})
	//
	return tbl
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringArray("context", []string{}, "operator property (e.g. add.commutative=false)")
	matchCmd.Flags().Bool("input-lisp", false, "parse pattern and expression as S-Expressions")
}
