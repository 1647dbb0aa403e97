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
package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-algebra/pkg/config"
	"github.com/consensys/go-algebra/pkg/rewrite"
)

func TestLoad_00(t *testing.T) {
	cfg := load(t, "")
	//
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
	assert.Nil(t, cfg.Context())
}

func TestLoad_01(t *testing.T) {
	cfg := load(t, `
simplify:
  exact_fractions: false
  fractions_limit: 100
  max_depth: 50
  debug: true
  context:
    multiply:
      commutative: false
    unaryMinus:
      associative: false
rules:
  defaults: false
  files: [a.yaml, b.yaml]
logging:
  level: debug
`)
	//
	assert.False(t, cfg.Simplify.ExactFractions)
	assert.Equal(t, int64(100), cfg.Simplify.FractionsLimit)
	assert.Equal(t, 50, cfg.Simplify.MaxDepth)
	assert.True(t, cfg.Simplify.Debug)
	assert.False(t, cfg.Rules.Defaults)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.Rules.Files)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	// Operator names are restored
	assert.Equal(t, rewrite.Context{
		"multiply":   {rewrite.Commutative: false},
		"unaryMinus": {rewrite.Associative: false},
	}, cfg.Context())
}

func TestLoad_02(t *testing.T) {
	t.Setenv("GOALGEBRA_SIMPLIFY_MAX_DEPTH", "7")
	t.Setenv("GOALGEBRA_LOGGING_LEVEL", "error")
	//
	cfg := load(t, "simplify:\n  max_depth: 50\n")
	//
	assert.Equal(t, 7, cfg.Simplify.MaxDepth)
	assert.Equal(t, log.ErrorLevel, cfg.LogLevel())
}

func TestLoad_03(t *testing.T) {
	checkInvalid(t, "simplify:\n  fractions_limit: 0\n", config.ErrInvalidFractionsLimit)
	checkInvalid(t, "simplify:\n  max_depth: -1\n", config.ErrInvalidMaxDepth)
	checkInvalid(t, "logging:\n  level: loud\n", config.ErrInvalidLogLevel)
	checkInvalid(t, "simplify:\n  context:\n    frobnicate:\n      commutative: true\n", config.ErrInvalidOperator)
	checkInvalid(t, "simplify:\n  context:\n    add:\n      idempotent: true\n", config.ErrInvalidProperty)
}

func TestLoad_04(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions_00(t *testing.T) {
	cfg := config.Default()
	cfg.Simplify.ExactFractions = false
	cfg.Simplify.Context = map[string]map[string]bool{"add": {rewrite.Commutative: false}}
	//
	opts := cfg.Options()
	//
	assert.False(t, opts.ExactFractions)
	assert.Equal(t, int64(config.DefaultFractionsLimit), opts.FractionsLimit)
	assert.Equal(t, config.DefaultMaxDepth, opts.MaxDepth)
	assert.False(t, opts.Context.Has("add", rewrite.Commutative))
}

func TestRuleSet_00(t *testing.T) {
	set, err := config.Default().RuleSet()
	//
	require.NoError(t, err)
	assert.Len(t, set, len(rewrite.DefaultRules()))
}

func TestRuleSet_01(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - n+n -> 2*n\n  - builtin: simplifyCore\n"), 0o600))
	//
	cfg := config.Default()
	cfg.Rules.Defaults = false
	cfg.Rules.Files = []string{path}
	//
	set, err := cfg.RuleSet()
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "n + n -> 2 * n", set[0].String())
	assert.Same(t, rewrite.SimplifyCore, set[1])
}

func TestRuleSet_02(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Files = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	//
	_, err := cfg.RuleSet()
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// ==================================================================
// Framework
// ==================================================================

func load(t *testing.T, contents string) *config.Config {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	//
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	//
	return cfg
}

func checkInvalid(t *testing.T, contents string, expected error) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	//
	_, err := config.Load(path)
	assert.True(t, errors.Is(err, expected), "unexpected error %v", err)
}
