// Package config loads evaluator-wide options through koanf, falling
// back to documented defaults when no file is supplied.
package config

import (
	"errors"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Options controls the handful of evaluator behaviors a host may want
// to tune without recompiling, per spec §6's ambient configuration
// surface.
type Options struct {
	// MaxInOperands caps the candidate-list length IN/NOT IN accepts,
	// guarding against pathological queries. Zero means unlimited.
	MaxInOperands int `koanf:"max_in_operands"`

	// StrictLeadingZeroIntegers mirrors invariant I1: an xsd:integer
	// lexical form with a leading zero other than the literal "0" is
	// nonLexical. This is always true; the field exists so a host can
	// read and assert the policy rather than silently depend on it.
	StrictLeadingZeroIntegers bool `koanf:"strict_leading_zero_integers"`

	// Collation names the string-comparison scheme. Only "codepoint" is
	// implemented; see spec §9's open question on collation.
	Collation string `koanf:"collation"`
}

// Default returns the evaluator's built-in option values.
func Default() Options {
	return Options{
		MaxInOperands:             0,
		StrictLeadingZeroIntegers: true,
		Collation:                 "codepoint",
	}
}

// Load reads options from a YAML file at path, overlaying them onto
// Default(). An empty or missing path is not an error: Load returns the
// defaults unchanged, treating the os.ErrNotExist error koanf's
// file.Provider reports for an absent file as "no overrides". A file
// that cannot be parsed is an error.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return Options{}, err
	}
	if err := k.Unmarshal("", &opts); err != nil {
		return Options{}, err
	}
	if opts.Collation == "" {
		opts.Collation = "codepoint"
	}
	return opts, nil
}
