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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/config"
	"github.com/consensys/go-algebra/pkg/rewrite"
)

func TestContextBinding_00(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, addContextBinding(cfg, "add.commutative=false"))
	require.NoError(t, addContextBinding(cfg, "add.associative=true"))
	require.NoError(t, cfg.Validate())
	//
	assert.Equal(t, rewrite.Context{"add": {rewrite.Commutative: false, rewrite.Associative: true}}, cfg.Context())
}

func TestContextBinding_01(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, addContextBinding(cfg, "unaryminus.commutative=1"))
	require.NoError(t, cfg.Validate())
	//
	assert.True(t, cfg.Context().Has("unaryMinus", rewrite.Commutative))
}

func TestContextBinding_02(t *testing.T) {
	checkInvalidBinding(t, "add.commutative")
	checkInvalidBinding(t, "commutative=false")
	checkInvalidBinding(t, "add.commutative=maybe")
}

func TestContextBinding_03(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, addContextBinding(cfg, "add.distributive=true"))
	//
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidProperty)
}

func TestFormatContext_00(t *testing.T) {
	ctx := rewrite.Context{
		"multiply": {rewrite.Commutative: false},
		"add":      {rewrite.Commutative: true, rewrite.Associative: false},
	}
	//
	assert.Equal(t, "add.associative=false,add.commutative=true,multiply.commutative=false", formatContext(ctx))
}

func TestRuleFlags_00(t *testing.T) {
	rule := compileRule(t, rewrite.RuleObject{S: "n1 + n2 -> n2 + n1", Repeat: true})
	//
	assert.Equal(t, []string{"repeat", "expanded"}, ruleFlags(rule))
}

func TestRuleFlags_01(t *testing.T) {
	rule := compileRule(t, rewrite.RuleObject{
		S:        "n1 * n2 -> n2 * n1",
		Assuming: rewrite.Context{"multiply": {rewrite.Commutative: false}},
	})
	//
	assert.Equal(t, []string{"assuming{multiply.commutative=false}", "expanded"}, ruleFlags(rule))
}

func TestRuleFlags_02(t *testing.T) {
	rule := compileRule(t, "-(-n) -> n")
	//
	assert.Empty(t, ruleFlags(rule))
}

func TestRuleFlags_03(t *testing.T) {
	ctx := rewrite.Context{"multiply": {rewrite.Commutative: false}}
	rules, err := rewrite.Compile(ctx, "n1 * n2 -> n2 * n1")
	require.NoError(t, err)
	//
	rule, ok := rules[0].(*rewrite.Rule)
	require.True(t, ok)
	assert.Equal(t, []string{"expanded", "nc"}, ruleFlags(rule))
}

func TestRuleTable_00(t *testing.T) {
	rules, err := rewrite.Compile(nil, rewrite.SimplifyCore, "n + n -> 2 * n")
	require.NoError(t, err)
	//
	out := ruleTable(rules, true).Render()
	//
	assert.Contains(t, out, "simplifyCore")
	assert.Contains(t, out, "transform")
	assert.Contains(t, out, "n + n -> 2 * n")
	assert.Contains(t, out, "expanded")
	assert.Contains(t, out, "kind")
	assert.NotContains(t, out, "KIND")
}

func TestMatchTable_00(t *testing.T) {
	matches := []rewrite.Match{
		{"n1": parse(t, "x"), "n2": parse(t, "y")},
		{"n1": parse(t, "y"), "n2": parse(t, "x")},
	}
	//
	out := matchTable(matches).Render()
	//
	assert.Contains(t, out, "n1")
	assert.Contains(t, out, "n2")
	assert.Contains(t, out, "Total: 2 match(es)")
	assert.NotContains(t, out, "N1")
}

func TestReadScope_00(t *testing.T) {
	scope := readScope([]string{"x = 2 * y", "y=3"}, false, config.DefaultMaxDepth)
	//
	require.Len(t, scope, 2)
	assert.Equal(t, "2 * y", scope["x"].String())
	assert.Equal(t, "3", scope["y"].String())
}

func TestReadScope_01(t *testing.T) {
	scope := readScope([]string{"x=(* 2 y)"}, true, config.DefaultMaxDepth)
	//
	assert.Equal(t, "2 * y", scope["x"].String())
}

func TestReadScope_02(t *testing.T) {
	assert.Nil(t, readScope(nil, false, config.DefaultMaxDepth))
}

// ==================================================================
// Framework
// ==================================================================

func checkInvalidBinding(t *testing.T, binding string) {
	t.Helper()
	//
	assert.Error(t, addContextBinding(config.Default(), binding), binding)
}

func compileRule(t *testing.T, rule any) *rewrite.Rule {
	t.Helper()
	//
	rules, err := rewrite.Compile(nil, rule)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	//
	r, ok := rules[0].(*rewrite.Rule)
	require.True(t, ok)
	//
	return r
}

func parse(t *testing.T, input string) ast.Node {
	t.Helper()
	//
	return readExpr(input, false, config.DefaultMaxDepth)
}
