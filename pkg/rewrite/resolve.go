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
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Scope binds variable names to expressions.
type Scope map[string]ast.Node

// Resolve replaces every variable bound in a given scope with its value,
// recursively resolving variables within those values.  An error is returned
// if variables are defined in terms of each other.
func Resolve(node ast.Node, scope Scope) (ast.Node, error) {
	if len(scope) == 0 {
		return node, nil
	}
	//
	return resolve(node, scope, nil)
}

func resolve(node ast.Node, scope Scope, within []string) (ast.Node, error) {
	if s, ok := node.(*ast.Symbol); ok {
		value, bound := scope[s.Name]
		//
		if slices.Contains(within, s.Name) {
			return nil, fmt.Errorf("%w among {%s}", ErrRecursiveScope, strings.Join(within, ", "))
		} else if !bound {
			return node, nil
		}
		//
		return resolve(value, scope, append(slices.Clone(within), s.Name))
	}
	//
	return mapChildren(node, func(child ast.Node) (ast.Node, error) {
		return resolve(child, scope, within)
	})
}
