// This file is part of Nopits.
//
// Nopits is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nopits is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nopits.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the user configuration. The configuration is a CUE
// document that is validated against an embedded schema. Every field has a
// default so an empty document, or no document at all, is valid.
//
// An example configuration that lowers the threshold and adds a Game Genie
// code:
//
//	tuning: threshold: 0xb0
//	codes: ["SXIOPO"]
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hostsim"
	"github.com/jetsetilly/nopits/logger"
	"github.com/jetsetilly/nopits/paths"
	"github.com/jetsetilly/nopits/recovery"
)

// ConfigError is the curated pattern for configuration errors.
const ConfigError = "config: %v"

// DefaultFile is the name of the configuration file in the resource path.
const DefaultFile = "nopits.cue"

//go:embed schema.cue
var schemaSrc string

// the layout of the document. field names match the schema
type document struct {
	Tuning struct {
		Threshold int `json:"threshold"`
		Boost     int `json:"boost"`
		Countdown int `json:"countdown"`
		Reentry   int `json:"reentry"`
	} `json:"tuning"`
	Variants []struct {
		Name    string `json:"name"`
		Ascend  int    `json:"ascend"`
		Descend int    `json:"descend"`
		MaxFall int    `json:"maxFall"`
	} `json:"variants"`
	Codes   []string `json:"codes"`
	Suffix  string   `json:"suffix"`
	History bool     `json:"history"`
}

// Config is the validated configuration.
type Config struct {
	Tuning   recovery.Tuning
	Variants []hostsim.Variant

	// extra Game Genie codes applied after the catalog
	Codes []string

	// added to the name of the input image to make the output filename
	Suffix string

	// record patch runs in the history database
	History bool

	// the file the configuration was loaded from. empty if the defaults
	// are being used
	Source string
}

// Parse the CUE document. The filename is used in error messages.
func Parse(src []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({"+schemaSrc+"})", cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	var doc document
	if err := value.Decode(&doc); err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	cfg := Config{
		Tuning: recovery.Tuning{
			Threshold: uint8(doc.Tuning.Threshold),
			Boost:     uint8(doc.Tuning.Boost),
			Countdown: uint8(doc.Tuning.Countdown),
			Reentry:   uint8(doc.Tuning.Reentry),
		},
		Codes:   doc.Codes,
		Suffix:  doc.Suffix,
		History: doc.History,
	}
	if len(doc.Variants) == 0 {
		cfg.Variants = slices.Clone(hostsim.Variants)
	}
	for _, v := range doc.Variants {
		cfg.Variants = append(cfg.Variants, hostsim.Variant{
			Name:           v.Name,
			AscendGravity:  uint8(v.Ascend),
			DescendGravity: uint8(v.Descend),
			MaxFall:        int8(v.MaxFall),
		})
	}

	if err := cfg.Tuning.Validate(); err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	return cfg, nil
}

// Default returns the default configuration.
func Default() Config {
	cfg, err := Parse(nil, "default")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load the configuration from the file. If filename is empty the default
// file in the resource path is used if it exists, otherwise the default
// configuration is returned.
func Load(filename string) (Config, error) {
	if filename == "" {
		pth, err := paths.ResourcePath("", DefaultFile)
		if err != nil {
			return Config{}, curated.Errorf(ConfigError, err)
		}
		if _, err := os.Stat(pth); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		filename = pth
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	cfg, err := Parse(src, filename)
	if err != nil {
		return Config{}, err
	}
	cfg.Source = filename

	logger.Logf(logger.Allow, "config", "loaded %s", filename)
	logger.Logf(logger.Allow, "config", "%s", cfg.Tuning)

	return cfg, nil
}

func (cfg Config) String() string {
	src := cfg.Source
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%s: %s, %d variants, %d extra codes", src, cfg.Tuning, len(cfg.Variants), len(cfg.Codes))
}
