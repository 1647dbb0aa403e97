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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/rewrite"
	"github.com/consensys/go-algebra/pkg/util"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] expr...",
	Short: "simplify one or more expressions.",
	Long: `Simplify one or more expressions by repeatedly applying the rule
	table until a fixed point is reached.  By default, the built-in rule table
	is used, though this can be extended (or replaced) with rules from one or
	more YAML rule files.`,
	Run: runSimplifyCmd,
}

func runSimplifyCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	//
	var (
		cfg       = loadConfig(cmd)
		lisp      = getFlag(cmd, "lisp")
		inputLisp = getFlag(cmd, "input-lisp")
		trace     = getFlag(cmd, "trace")
		stats     = getFlag(cmd, "stats")
		steps     uint64
	)
	// Apply command-line overrides
	if getFlag(cmd, "no-defaults") {
		cfg.Rules.Defaults = false
	}
	//
	if getFlag(cmd, "no-fractions") {
		cfg.Simplify.ExactFractions = false
	}
	//
	if cmd.Flags().Changed("fractions-limit") {
		cfg.Simplify.FractionsLimit = getInt64(cmd, "fractions-limit")
	}
	//
	cfg.Rules.Files = append(cfg.Rules.Files, getStringArray(cmd, "rules")...)
	//
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	// Compile rules
	rules, err := cfg.RuleSet()
	if err != nil {
		fail(err)
	}
	//
	scope := readScope(getStringArray(cmd, "let"), inputLisp, cfg.Simplify.MaxDepth)
	opts := cfg.Options()
	//
	if trace || stats {
		opts.OnStep = func(step rewrite.Step, before ast.Node, after ast.Node) {
			steps++
			//
			if trace {
				printStep(steps, step, before, after)
			}
		}
	}
	//
	for _, arg := range args {
		perf := util.NewPerfStats()
		expr := readExpr(arg, inputLisp, cfg.Simplify.MaxDepth)
		steps = 0
		//
		result, err := rewrite.Simplify(expr, rules, scope, opts)
		if err != nil {
			fail(err)
		}
		//
		fmt.Println(formatNode(result, lisp))
		//
		if stats {
			color.New(color.Faint).Printf("%s step(s), %s\n", humanize.Comma(int64(steps)), perf)
		} else {
			perf.Log("simplification")
		}
	}
}

// Read the variable bindings given on the command line, each of the form
// "name=expr".
func readScope(bindings []string, lisp bool, maxDepth int) rewrite.Scope {
	if len(bindings) == 0 {
		return nil
	}
	//
	scope := make(rewrite.Scope, len(bindings))
	//
	for _, binding := range bindings {
		name, expr, ok := strings.Cut(binding, "=")
		name = strings.TrimSpace(name)
		//
		if !ok || name == "" {
			fail(fmt.Errorf("invalid binding %q (expected name=expr)", binding))
		}
		//
		scope[name] = readExpr(expr, lisp, maxDepth)
	}
	//
	return scope
}

// Print a single step of a simplification, highlighting what it changed.
func printStep(index uint64, step rewrite.Step, before ast.Node, after ast.Node) {
	var (
		from = before.String()
		to   = after.String()
	)
	//
	color.New(color.FgCyan).Printf("[%s] %s\n", humanize.Comma(int64(index)), step)
	// Without colour, an inline diff is unreadable
	if color.NoColor {
		fmt.Printf("    - %s\n    + %s\n", from, to)
		return
	}
	//
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))
	//
	var builder strings.Builder
	//
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			builder.WriteString(color.New(color.FgRed, color.CrossedOut).Sprint(diff.Text))
		case diffmatchpatch.DiffInsert:
			builder.WriteString(color.New(color.FgGreen).Sprint(diff.Text))
		default:
			builder.WriteString(diff.Text)
		}
	}
	//
	fmt.Printf("    %s\n", builder.String())
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().StringArray("rules", []string{}, "YAML file of additional rules (can be repeated)")
	simplifyCmd.Flags().Bool("no-defaults", false, "do not include the built-in rule table")
	simplifyCmd.Flags().StringArray("context", []string{}, "operator property (e.g. add.commutative=false)")
	simplifyCmd.Flags().StringArray("let", []string{}, "bind a variable (e.g. x=2*y)")
	simplifyCmd.Flags().Bool("no-fractions", false, "fold constants into floating point numbers")
	simplifyCmd.Flags().Int64("fractions-limit", 10000, "maximum numerator/denominator of exact fractions")
	simplifyCmd.Flags().Bool("lisp", false, "print results as S-Expressions")
	simplifyCmd.Flags().Bool("input-lisp", false, "parse expressions as S-Expressions")
	simplifyCmd.Flags().Bool("trace", false, "print every step which changes an expression")
	simplifyCmd.Flags().Bool("stats", false, "print performance statistics")
}
