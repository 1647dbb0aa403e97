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
package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/parser"
)

func TestContext_00(t *testing.T) {
	ctx := DefaultContext()
	//
	assert.True(t, ctx.Has("add", Commutative))
	assert.True(t, ctx.Has("multiply", Associative))
	assert.False(t, ctx.Has("subtract", Commutative))
	assert.False(t, ctx.Has("pow", Associative))
}

func TestContext_01(t *testing.T) {
	var ctx Context
	// Falls back on defaults
	assert.True(t, ctx.Has("add", Commutative))
	assert.False(t, ctx.Has("divide", Commutative))
}

func TestContext_02(t *testing.T) {
	ctx := Context{"add": {Commutative: false}}
	//
	assert.False(t, ctx.Has("add", Commutative))
	assert.True(t, ctx.Has("add", Associative))
}

func TestContext_03(t *testing.T) {
	ctx := DefaultContext().Merge(Context{"multiply": {Commutative: false}, "mod": {Associative: true}})
	//
	assert.False(t, ctx.Has("multiply", Commutative))
	assert.True(t, ctx.Has("multiply", Associative))
	assert.True(t, ctx.Has("mod", Associative))
	// Original unchanged
	assert.True(t, DefaultContext().Has("multiply", Commutative))
}

func TestContext_04(t *testing.T) {
	ctx := Context{"multiply": {Commutative: false}}
	//
	assert.True(t, ctx.Satisfies(nil))
	assert.True(t, ctx.Satisfies(Context{"multiply": {Commutative: false}}))
	assert.False(t, ctx.Satisfies(Context{"multiply": {Commutative: true}}))
	assert.True(t, ctx.Satisfies(Context{"add": {Commutative: true}}))
	assert.False(t, Context(nil).Satisfies(Context{"multiply": {Commutative: false}}))
}

func TestContext_05(t *testing.T) {
	ctx := DefaultContext()
	//
	assert.True(t, IsCommutative(ast.NewSymbol("x"), ctx))
	assert.False(t, IsAssociative(ast.NewSymbol("x"), ctx))
	assert.True(t, IsCommutative(parser.MustParse("x * y"), ctx))
	assert.False(t, IsCommutative(parser.MustParse("x / y"), ctx))
	assert.True(t, IsAssociative(parser.MustParse("x + y"), ctx))
	assert.False(t, IsAssociative(parser.MustParse("x - y"), ctx))
}

func TestContext_06(t *testing.T) {
	// Function arguments may be swapped, but never regrouped
	node := parser.MustParse("f(x, y)")
	//
	assert.True(t, IsCommutative(node, DefaultContext()))
	assert.False(t, IsAssociative(node, DefaultContext()))
}
