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
	"github.com/consensys/go-algebra/pkg/ast"
)

// Commutative identifies the property of an operator whose arguments may be
// reordered.
const Commutative = "commutative"

// Associative identifies the property of an operator whose chains may be
// regrouped.
const Associative = "associative"

// Properties maps property names (e.g. "commutative") to their values.
type Properties map[string]bool

// Context records the assumed algebraic properties of operators, keyed by
// operator function name (e.g. "add").  Operators which are absent (or
// properties which are absent) fall back to the default context.
type Context map[string]Properties

var defaultContext = Context{
	"add":      {Commutative: true, Associative: true},
	"multiply": {Commutative: true, Associative: true},
}

// DefaultContext returns a copy of the default context, under which add and
// multiply are commutative and associative, and nothing else is.
func DefaultContext() Context {
	return defaultContext.Merge(nil)
}

// Has determines whether a given operator has a given property.  This is
// determined by this context, then by the default context and, failing that,
// is false.
func (c Context) Has(name string, property string) bool {
	if value, ok := c[name][property]; ok {
		return value
	} else if value, ok := defaultContext[name][property]; ok {
		return value
	}
	//
	return false
}

// Merge returns a new context containing the properties of this context,
// overridden by those of another context.
func (c Context) Merge(other Context) Context {
	merged := make(Context, len(c)+len(other))
	//
	for _, ctx := range []Context{c, other} {
		for name, props := range ctx {
			if merged[name] == nil {
				merged[name] = make(Properties)
			}
			//
			for prop, value := range props {
				merged[name][prop] = value
			}
		}
	}
	//
	return merged
}

// Satisfies checks whether every property stated in a given set of
// assumptions agrees with this context.
func (c Context) Satisfies(assumptions Context) bool {
	for name, props := range assumptions {
		for prop, value := range props {
			if c.Has(name, prop) != value {
				return false
			}
		}
	}
	//
	return true
}

// IsCommutative determines whether a node is commutative under a given context.
// Nodes other than operators are trivially commutative.  In particular, this
// holds for function calls, so "f(v, c)" matches "f(2, x)" with its arguments
// swapped, and a function pattern with more than two arguments which does not
// match in order fails with ErrNotImplemented.
func IsCommutative(node ast.Node, ctx Context) bool {
	if op, ok := node.(*ast.Operator); ok {
		return ctx.Has(op.Fn, Commutative)
	}
	//
	return true
}

// IsAssociative determines whether a node is associative under a given
// context.  Nodes other than operators are never associative.
func IsAssociative(node ast.Node, ctx Context) bool {
	if op, ok := node.(*ast.Operator); ok {
		return ctx.Has(op.Fn, Associative)
	}
	//
	return false
}
