/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name,
  type in a string format, a function for updating the variable in the
  Config struct from a string, and a validation function to check the
  validity of the corresponding field value in the Config. This is the
  same generic name/type/update/validate shape revid/config used for host
  reconfiguration, generalised here to the pipeline's render-time knobs.

AUTHORS
  Pixelpipe Authors

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package config

import "strconv"

// Config map keys.
const (
	KeyParallelism = "Parallelism"
	KeyTileBudget  = "TileBudget"
	KeyCacheLimit  = "CacheLimit"
	KeyLogLevel    = "LogLevel"
)

// Config map parameter types.
const (
	typeUint = "uint"
	typeInt  = "int"
)

// Variables describes the variables that can be used for host-driven
// pipeline reconfiguration. These structs provide the name and type of
// variable, a function for updating this variable in a Config, and a
// function for validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name: KeyParallelism,
		Type: typeUint,
		Update: func(c *Config, v string) {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				c.LogInvalidField(KeyParallelism, c.Parallelism)
				return
			}
			c.Parallelism = uint(n)
		},
		Validate: func(c *Config) {
			if c.Parallelism == 0 {
				c.LogInvalidField(KeyParallelism, defaultParallelism)
				c.Parallelism = defaultParallelism
			}
		},
	},
	{
		Name: KeyTileBudget,
		Type: typeUint,
		Update: func(c *Config, v string) {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				c.LogInvalidField(KeyTileBudget, c.TileBudget)
				return
			}
			c.TileBudget = uint(n)
		},
		Validate: func(c *Config) {
			if c.TileBudget == 0 {
				c.LogInvalidField(KeyTileBudget, defaultTileBudget)
				c.TileBudget = defaultTileBudget
			}
		},
	},
	{
		Name: KeyCacheLimit,
		Type: typeUint,
		Update: func(c *Config, v string) {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				c.LogInvalidField(KeyCacheLimit, c.CacheLimit)
				return
			}
			c.CacheLimit = uint(n)
		},
	},
	{
		Name: KeyLogLevel,
		Type: typeInt,
		Update: func(c *Config, v string) {
			n, err := strconv.ParseInt(v, 10, 8)
			if err != nil {
				c.LogInvalidField(KeyLogLevel, c.LogLevel)
				return
			}
			c.LogLevel = int8(n)
			if c.Logger != nil {
				c.Logger.SetLevel(c.LogLevel)
			}
		},
	},
}

// Update takes a map of configuration variable names and their
// corresponding values, parses the string values and converts them into
// the correct type, then sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}
