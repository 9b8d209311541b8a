// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credentials loads the Scopus API key from a local JSON file of
// the form {"api-key": "..."}. The SCOPUS_API_KEY environment variable
// overrides the file.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const (
	// KeyAPIKey is the JSON key holding the API key.
	KeyAPIKey = "api-key"

	// EnvAPIKey overrides the file when set.
	EnvAPIKey = "SCOPUS_API_KEY"
)

// ErrNoAPIKey indicates neither the file nor the environment supplied a key.
var ErrNoAPIKey = errors.New("no API key found")

// ConfigError reports a missing or malformed credentials file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("credentials %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Credentials holds the API key. It is read once and not modified.
type Credentials struct {
	APIKey string
}

// String hides the key in logs and error messages.
func (c Credentials) String() string {
	if c.APIKey == "" {
		return "credentials(empty)"
	}
	return "credentials(****)"
}

// Load reads the credentials file at path. A missing file is only an
// error when SCOPUS_API_KEY is unset too.
func Load(path string) (Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.BindEnv(KeyAPIKey, EnvAPIKey); err != nil {
		return Credentials{}, &ConfigError{Path: path, Err: err}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || !v.IsSet(KeyAPIKey) {
			return Credentials{}, &ConfigError{Path: path, Err: err}
		}
	}

	key := strings.TrimSpace(v.GetString(KeyAPIKey))
	if key == "" {
		return Credentials{}, &ConfigError{Path: path, Err: ErrNoAPIKey}
	}
	return Credentials{APIKey: key}, nil
}
