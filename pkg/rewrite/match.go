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
	"slices"
	"strings"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Match binds wildcard names to the nodes they matched.
type Match map[string]ast.Node

// Key returns a canonical string for this match, such that two matches have
// the same key exactly when they bind the same wildcards to the same nodes.
func (m Match) Key() string {
	var (
		builder strings.Builder
		names   = make([]string, 0, len(m))
	)
	//
	for name := range m {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	for _, name := range names {
		builder.WriteString(name)
		builder.WriteString("=")
		builder.WriteString(ast.Lisp(m[name]).String(true))
		builder.WriteString(";")
	}
	//
	return builder.String()
}

// Merge two matches together.  This fails if they bind the same wildcard to
// different nodes.
func mergeMatch(lhs Match, rhs Match) (Match, bool) {
	res := make(Match, len(lhs)+len(rhs))
	//
	for name, node := range lhs {
		if other, ok := rhs[name]; ok && !ast.Equal(node, other) {
			return nil, false
		}
		//
		res[name] = node
	}
	//
	for name, node := range rhs {
		res[name] = node
	}
	//
	return res, true
}

// Combine every match from one list with every match from another, retaining
// those which merge successfully.
func combineChildMatches(lhs []Match, rhs []Match) []Match {
	var res []Match
	//
	for _, l := range lhs {
		for _, r := range rhs {
			if m, ok := mergeMatch(l, r); ok {
				res = append(res, m)
			}
		}
	}
	//
	return res
}

// Combine the matches of all children, eliminating duplicates.  When there are
// no children, the result is a single empty match.
func mergeChildMatches(children [][]Match) []Match {
	if len(children) == 0 {
		return []Match{{}}
	}
	//
	sets := children[0]
	//
	for _, child := range children[1:] {
		sets = combineChildMatches(sets, child)
	}
	//
	var (
		unique = make(map[string]bool)
		res    []Match
	)
	//
	for _, m := range sets {
		if key := m.Key(); !unique[key] {
			unique[key] = true
			res = append(res, m)
		}
	}
	//
	return res
}
