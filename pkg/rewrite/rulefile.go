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
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Builtins are the transforms which rule files can refer to by name.
var Builtins = map[string]*Transform{
	SimplifyCore.Name:     SimplifyCore,
	SimplifyConstant.Name: SimplifyConstant,
}

type ruleFile struct {
	Rules []yaml.Node `yaml:"rules"`
}

type builtinEntry struct {
	Builtin string `yaml:"builtin"`
}

// LoadRuleFile reads a YAML rule file from disk.  See ParseRuleFile.
func LoadRuleFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	rules, err := ParseRuleFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	//
	log.Debugf("loaded %d rule(s) from %s", len(rules), path)
	//
	return rules, nil
}

// ParseRuleFile parses the contents of a YAML rule file, returning the rules
// in a form suitable for Compile.  A rule file contains a list of rules under
// the "rules" key, where each is either a string (e.g. "n+n -> 2*n"), a
// mapping with the fields of a RuleObject, or a mapping naming a builtin
// transform (e.g. "builtin: simplifyCore").  For example:
//
//	rules:
//	  - builtin: simplifyCore
//	  - "n+n -> 2*n"
//	  - l: "c+v"
//	    r: "v+c"
//	    imposeContext:
//	      add: {commutative: false}
func ParseRuleFile(data []byte) ([]any, error) {
	var file ruleFile
	//
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleFile, err)
	}
	//
	rules := make([]any, len(file.Rules))
	//
	for i := range file.Rules {
		rule, err := parseRuleEntry(&file.Rules[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", file.Rules[i].Line, err)
		}
		//
		rules[i] = rule
	}
	//
	return rules, nil
}

func parseRuleEntry(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.MappingNode:
		if hasKey(node, "builtin") {
			var entry builtinEntry
			//
			if err := node.Decode(&entry); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidRuleFile, err)
			} else if t, ok := Builtins[entry.Builtin]; ok {
				return t, nil
			}
			//
			return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, entry.Builtin)
		}
		//
		var obj RuleObject
		//
		if err := node.Decode(&obj); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRuleFile, err)
		}
		//
		return obj, nil
	}
	//
	return nil, fmt.Errorf("%w: expected string or mapping", ErrInvalidRuleFile)
}

// Check whether a mapping node has a given key.
func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	//
	return false
}
