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
package config

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/consensys/go-algebra/pkg/rewrite"
)

// Sentinel validation errors.
var (
	ErrInvalidFractionsLimit = errors.New("fractions limit must be positive")
	ErrInvalidMaxDepth       = errors.New("maximum depth must be positive")
	ErrInvalidLogLevel       = errors.New("invalid logging level")
	ErrInvalidOperator       = errors.New("unknown operator in context")
	ErrInvalidProperty       = errors.New("unknown operator property in context")
)

// Default configuration values.
const (
	DefaultExactFractions = true
	DefaultFractionsLimit = 10000
	DefaultMaxDepth       = 10000
	DefaultRules          = true
	DefaultLogLevel       = "warn"
)

// EnvPrefix is the prefix of environment variables which override
// configuration keys (e.g. GOALGEBRA_SIMPLIFY_MAX_DEPTH).
const EnvPrefix = "GOALGEBRA"

// Name of the configuration file searched for when none is given.
const defaultConfigName = ".go-algebra"

// Operator functions which can appear in a context.  Since configuration keys
// are case insensitive, these are used to restore the expected case.
var operatorNames = []string{"add", "subtract", "multiply", "divide", "mod", "pow", "unaryMinus", "unaryPlus"}

// Config holds all configuration for the simplifier.
type Config struct {
	Simplify SimplifyConfig `mapstructure:"simplify"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SimplifyConfig holds the options for simplification.
type SimplifyConfig struct {
	ExactFractions bool                       `mapstructure:"exact_fractions"`
	FractionsLimit int64                      `mapstructure:"fractions_limit"`
	MaxDepth       int                        `mapstructure:"max_depth"`
	Debug          bool                       `mapstructure:"debug"`
	Context        map[string]map[string]bool `mapstructure:"context"`
}

// RulesConfig determines which rules are used for simplification.
type RulesConfig struct {
	// Defaults determines whether the default rules are used.  Rules loaded
	// from files are added after these.
	Defaults bool     `mapstructure:"defaults"`
	Files    []string `mapstructure:"files"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the configuration from a given YAML file (if any), overridden by
// environment variables.  When no path is given, a file named ".go-algebra"
// is looked for in the current directory, though it need not exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	//
	setDefaults(v)
	//
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	//
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	//
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debugf("using configuration file %s", v.ConfigFileUsed())
	}
	//
	var config Config
	//
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	} else if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	//
	return &config, nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Simplify: SimplifyConfig{
			ExactFractions: DefaultExactFractions,
			FractionsLimit: DefaultFractionsLimit,
			MaxDepth:       DefaultMaxDepth,
		},
		Rules:   RulesConfig{Defaults: DefaultRules},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	//
	v.SetDefault("simplify.exact_fractions", def.Simplify.ExactFractions)
	v.SetDefault("simplify.fractions_limit", def.Simplify.FractionsLimit)
	v.SetDefault("simplify.max_depth", def.Simplify.MaxDepth)
	v.SetDefault("simplify.debug", def.Simplify.Debug)
	v.SetDefault("rules.defaults", def.Rules.Defaults)
	v.SetDefault("logging.level", def.Logging.Level)
}

// Validate checks this configuration is well formed, and restores the case of
// operator names in the context.
func (c *Config) Validate() error {
	if c.Simplify.FractionsLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFractionsLimit, c.Simplify.FractionsLimit)
	} else if c.Simplify.MaxDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, c.Simplify.MaxDepth)
	} else if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	//
	ctx := make(map[string]map[string]bool, len(c.Simplify.Context))
	//
	for name, props := range c.Simplify.Context {
		op, ok := operatorName(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidOperator, name)
		}
		//
		for prop := range props {
			if prop != rewrite.Commutative && prop != rewrite.Associative {
				return fmt.Errorf("%w: %s.%s", ErrInvalidProperty, name, prop)
			}
		}
		//
		ctx[op] = props
	}
	//
	if len(ctx) > 0 {
		c.Simplify.Context = ctx
	}
	//
	return nil
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.WarnLevel
	}
	//
	return level
}

// Context returns the configured operator context, or nil if none was given
// (i.e. the default context).
func (c *Config) Context() rewrite.Context {
	if len(c.Simplify.Context) == 0 {
		return nil
	}
	//
	ctx := make(rewrite.Context, len(c.Simplify.Context))
	//
	for name, props := range c.Simplify.Context {
		ctx[name] = rewrite.Properties(props)
	}
	//
	return ctx
}

// Options converts this configuration into simplification options.
func (c *Config) Options() rewrite.Options {
	opts := rewrite.DefaultOptions()
	//
	opts.Context = c.Context()
	opts.ExactFractions = c.Simplify.ExactFractions
	opts.FractionsLimit = c.Simplify.FractionsLimit
	opts.MaxDepth = c.Simplify.MaxDepth
	opts.Debug = c.Simplify.Debug
	//
	return opts
}

// RuleSet compiles the configured rules, consisting of the default rules (if
// enabled) followed by those of each rule file in turn.
func (c *Config) RuleSet() (rewrite.RuleSet, error) {
	var rules []any
	//
	if c.Rules.Defaults {
		rules = append(rules, rewrite.DefaultRules()...)
	}
	//
	for _, file := range c.Rules.Files {
		fileRules, err := rewrite.LoadRuleFile(file)
		if err != nil {
			return nil, err
		}
		//
		rules = append(rules, fileRules...)
	}
	//
	return rewrite.Compile(c.Context(), rules...)
}

func operatorName(name string) (string, bool) {
	for _, op := range operatorNames {
		if strings.EqualFold(op, name) {
			return op, true
		}
	}
	//
	return "", false
}
