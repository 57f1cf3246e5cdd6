// Package wafconfig loads the optional YAML configuration that governs
// which detectors are active and lets an operator extend the core
// classifier's fingerprint decisions with a local allow/deny list,
// without ever altering the compiled-in classifier logic itself.
package wafconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level shape of a wafdetect configuration file.
type Config struct {
	// SQLi toggles the SQL injection detector. Defaults to true.
	SQLi bool `yaml:"sqli"`
	// XSS toggles the cross-site-scripting detector. Defaults to true.
	XSS bool `yaml:"xss"`

	// ExtraAllowedFingerprints lists SQL injection fingerprints that
	// should never be reported, layered on top of (never replacing) the
	// compiled-in classifier.
	ExtraAllowedFingerprints []string `yaml:"extraAllowedFingerprints"`
	// ExtraBlockedFingerprints lists fingerprints that should always be
	// reported as injection, even if the compiled-in blacklist doesn't
	// already flag them.
	ExtraBlockedFingerprints []string `yaml:"extraBlockedFingerprints"`
}

// Default returns the zero-configuration behavior: both detectors
// enabled, no fingerprint overrides.
func Default() Config {
	return Config{SQLi: true, XSS: true}
}

// Load reads and parses a YAML configuration file at path. Missing
// fields fall back to Default's values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{Path: path, Err: err}
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &LoadError{Path: path, Err: err}
	}
	return cfg, nil
}

// Allows reports whether fingerprint is explicitly allow-listed.
func (c Config) Allows(fingerprint string) bool {
	for _, fp := range c.ExtraAllowedFingerprints {
		if fp == fingerprint {
			return true
		}
	}
	return false
}

// Blocks reports whether fingerprint is explicitly block-listed.
func (c Config) Blocks(fingerprint string) bool {
	for _, fp := range c.ExtraBlockedFingerprints {
		if fp == fingerprint {
			return true
		}
	}
	return false
}

// LoadError wraps a configuration load failure with the file path it was
// attempting to read, following this codebase's convention of attaching
// positional/contextual information to errors rather than returning a
// bare wrapped error.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "wafconfig: " + e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }
