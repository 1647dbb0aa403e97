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

import "errors"

// Sentinel errors.
var (
	// ErrMalformedRule indicates a rule string which does not have the form
	// "l -> r", or whose sides could not be parsed.
	ErrMalformedRule = errors.New("malformed rule")
	// ErrIncompleteRule indicates a rule object with neither s nor both l and r.
	ErrIncompleteRule = errors.New("rule must have either s or both l and r")
	// ErrUnsupportedRule indicates a rule of an unsupported type.
	ErrUnsupportedRule = errors.New("unsupported rule")
	// ErrInvalidWildcard indicates a symbol in a rule pattern which is neither
	// a wildcard nor a named constant.
	ErrInvalidWildcard = errors.New("invalid symbol in rule")
	// ErrNotImplemented indicates an attempt to permute more than two
	// arguments of a commutative operator.
	ErrNotImplemented = errors.New("permuting >2 commutative non-associative rule arguments not yet implemented")
	// ErrNonBinaryAssociative indicates an associative rule pattern with more
	// than two arguments.
	ErrNonBinaryAssociative = errors.New("unexpected non-binary associative function")
	// ErrRecursiveScope indicates a cycle amongst variable definitions.
	ErrRecursiveScope = errors.New("recursive loop of variable definitions")
	// ErrTooDeep indicates an expression nested more deeply than permitted.
	ErrTooDeep = errors.New("expression nested too deeply")
	// ErrInvalidRuleFile indicates a rule file which is not structured as
	// expected.
	ErrInvalidRuleFile = errors.New("invalid rule file")
	// ErrUnknownBuiltin indicates a rule file naming an unknown builtin
	// transform.
	ErrUnknownBuiltin = errors.New("unknown builtin")
)
