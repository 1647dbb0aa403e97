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
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/consensys/go-algebra/pkg/rewrite"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags]",
	Short: "list the rule table.",
	Long: `List the rule table in the order in which rules are applied,
	including any rules loaded from rule files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		//
		if getFlag(cmd, "no-defaults") {
			cfg.Rules.Defaults = false
		}
		//
		cfg.Rules.Files = append(cfg.Rules.Files, getStringArray(cmd, "rules")...)
		//
		rules, err := cfg.RuleSet()
		if err != nil {
			fail(err)
		}
		//
		fmt.Println(ruleTable(rules, getFlag(cmd, "variants")).Render())
	},
}

// Construct a table describing each step of a rule set, optionally including
// the expanded variants of each rule.
func ruleTable(rules rewrite.RuleSet, variants bool) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	// Rule text is case sensitive
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"#", "kind", "rule", "flags"})
	//
	for i, step := range rules {
		switch s := step.(type) {
		case *rewrite.Transform:
			tbl.AppendRow(table.Row{i, "transform", s.Name, ""})
		case *rewrite.Rule:
			tbl.AppendRow(table.Row{i, "rule", s.String(), strings.Join(ruleFlags(s), " ")})
			//
			if variants {
				for _, v := range s.Variants()[1:] {
					tbl.AppendRow(table.Row{"", "", fmt.Sprintf("  %s -> %s", v.Left, v.Right), ""})
				}
			}
		default:
			panic("unreachable")
		}
	}
	//
	return tbl
}

// Summarise the attributes of a rule.
func ruleFlags(rule *rewrite.Rule) []string {
	var flags []string
	//
	if rule.Repeat {
		flags = append(flags, "repeat")
	}
	//
	if len(rule.Assuming) > 0 {
		flags = append(flags, fmt.Sprintf("assuming{%s}", formatContext(rule.Assuming)))
	}
	//
	if len(rule.ImposeContext) > 0 {
		flags = append(flags, fmt.Sprintf("impose{%s}", formatContext(rule.ImposeContext)))
	}
	//
	if rule.Expanded != nil {
		flags = append(flags, "expanded")
	}
	//
	if rule.ExpandedNC1 != nil {
		flags = append(flags, "nc")
	}
	//
	return flags
}

// Render a context as a sorted list of "op.property=bool" bindings.
func formatContext(ctx rewrite.Context) string {
	var bindings []string
	//
	for op, props := range ctx {
		for prop, value := range props {
			bindings = append(bindings, fmt.Sprintf("%s.%s=%t", op, prop, value))
		}
	}
	//
	slices.Sort(bindings)
	//
	return strings.Join(bindings, ",")
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringArray("rules", []string{}, "YAML file of additional rules (can be repeated)")
	rulesCmd.Flags().Bool("no-defaults", false, "do not include the built-in rule table")
	rulesCmd.Flags().Bool("variants", false, "show the expanded variants of each rule")
}
