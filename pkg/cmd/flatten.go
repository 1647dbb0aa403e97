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

	"github.com/spf13/cobra"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/rewrite"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten [flags] expr",
	Short: "flatten and unflatten an expression.",
	Long: `Flatten every chain of an associative operator within an expression,
	and then rebuild it as a tree of binary operators.  This shows the forms
	against which rules are matched.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			cfg       = loadConfig(cmd)
			ctx       = cfg.Context()
			inputLisp = getFlag(cmd, "input-lisp")
			expr      = ast.RemoveParens(readExpr(args[0], inputLisp, cfg.Simplify.MaxDepth))
			flat      = rewrite.Flatten(expr, ctx)
			unflat    ast.Node
		)
		//
		if getFlag(cmd, "right") {
			unflat = rewrite.Unflattenr(flat, ctx)
		} else {
			unflat = rewrite.Unflattenl(flat, ctx)
		}
		//
		fmt.Printf("flattened:   %s\n", formatNode(flat, true))
		fmt.Printf("unflattened: %s\n", ast.Format(unflat, ast.All))
	},
}

func init() {
	rootCmd.AddCommand(flattenCmd)
	flattenCmd.Flags().StringArray("context", []string{}, "operator property (e.g. add.commutative=false)")
	flattenCmd.Flags().Bool("input-lisp", false, "parse expression as an S-Expression")
	flattenCmd.Flags().Bool("right", false, "unflatten into right-heavy trees")
}
