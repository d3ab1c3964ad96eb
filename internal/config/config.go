// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// ErrConfig marks missing or invalid configuration. It is surfaced to the
// caller and never retried.
var ErrConfig = errors.New("configuration error")

// Defaults applied when the file does not set a value.
const (
	DefaultBucketName  = "snaps"
	DefaultLocalFolder = "snaps"
	DefaultConcurrency = 4
	DefaultHash        = "sha256"
)

// candidateFiles are looked up in the working directory, in order, when no
// explicit path or SNAPDIFF_CFG_FILE is given.
var candidateFiles = []string{"snapdiff.yaml", "snapdiff.yml", "snapdiff.json"}

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the file loaded.
//   - Namespace: optional dot-prefixed keyspace used to prefer namespaced
//     lookups (e.g. "compare.concurrency").
//   - Data: raw key/value tree unmarshaled from YAML or JSON.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Provider selects and configures a blob store.
type Provider struct {
	Name    string
	Options map[string]string
}

// Settings is the typed view of the keys snapdiff itself understands.
type Settings struct {
	BucketProvider Provider
	BucketName     string
	LocalFolder    string
	ErrorOutput    string
	Concurrency    int
	Hash           string
	CacheClean     int
}

// Load reads the configuration file and returns it. The path is chosen from,
// in order: the first non-empty cfgFilePath, SNAPDIFF_CFG_FILE, then
// snapdiff.yaml, snapdiff.yml and snapdiff.json in the working directory.
// JSON files are read by the YAML decoder.
func Load(cfgFilePath ...string) (Type, error) {
	path, err := getConfigFile(cfgFilePath...)
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}

	return Type{
		Source: path,
		Data:   data,
	}, nil
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// YAML numbers may decode as int, int64, or float64; common cases are handled.
func (cfg Type) GetInt(key string, defaultValue ...int) (int, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func (cfg Type) GetString(key string, defaultValue ...string) (string, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}

	return s, nil
}

// GetStringMap returns a mapping below key with every scalar value rendered
// as a string. Nested maps are rejected.
func (cfg Type) GetStringMap(key string) (map[string]string, error) {
	val, err := cfg.get(key)
	if err != nil {
		return nil, err
	}

	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: value is not a map", key)
	}

	result := make(map[string]string, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("%s.%s: value is not a scalar", key, k)
		case nil:
			result[k] = ""
		default:
			result[k] = fmt.Sprint(v)
		}
	}

	return result, nil
}

// Settings resolves the typed configuration, applying defaults. It does not
// require a bucket provider; commands that need one call RequireProvider.
func (cfg Type) Settings() (Settings, error) {
	var s Settings
	var err error

	if s.BucketName, err = cfg.GetString("bucketName", DefaultBucketName); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if s.LocalFolder, err = cfg.GetString("localFolder", DefaultLocalFolder); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if s.ErrorOutput, err = cfg.GetString("errorOutput", ""); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if s.Concurrency, err = cfg.GetInt("concurrency", DefaultConcurrency); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}
	if s.Hash, err = cfg.GetString("hash", DefaultHash); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if s.CacheClean, err = cfg.GetInt("cache.clean", 0); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if s.BucketProvider.Name, err = cfg.GetString("bucketProvider.name", ""); err != nil {
		return s, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	s.BucketProvider.Options = map[string]string{}
	if _, err := cfg.get("bucketProvider.options"); err == nil {
		opts, err := cfg.GetStringMap("bucketProvider.options")
		if err != nil {
			return s, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		s.BucketProvider.Options = opts
	}

	return s, nil
}

// RequireProvider returns ErrConfig when no bucket provider is configured.
func (s Settings) RequireProvider() error {
	if s.BucketProvider.Name == "" {
		return fmt.Errorf("%w: no bucketProvider.name configured", ErrConfig)
	}
	return nil
}

// get traverses the configuration tree using a dotted key path (e.g.
// "bucketProvider.options.region"). If Namespace is set, a namespaced
// candidate key is attempted first (Namespace + "." + kspec), then the
// unnamespaced key. Returns the raw value (any) if found.
func (cfg Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, key := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[key]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

// getConfigFile returns the absolute path to the config file. An explicit
// path must exist. SNAPDIFF_CFG_FILE is treated as the full path to the config
// file. Otherwise the working directory is searched for candidateFiles.
func getConfigFile(explicit ...string) (string, error) {
	for _, p := range explicit {
		if p == "" {
			continue
		}
		return checkFile(p, "config file")
	}

	if cfgPath := os.Getenv("SNAPDIFF_CFG_FILE"); cfgPath != "" {
		path, err := checkFile(cfgPath, "SNAPDIFF_CFG_FILE")
		if err == nil {
			log.Debugf("using config file from SNAPDIFF_CFG_FILE: %s", path)
		}
		return path, err
	}

	for _, name := range candidateFiles {
		if fileInfo, err := os.Stat(name); err == nil && !fileInfo.IsDir() {
			abs, err := filepath.Abs(name)
			if err != nil {
				return "", err
			}
			log.Debugf("using config file: %s", abs)
			return abs, nil
		}
	}

	return "", fmt.Errorf("%w: no config file found (tried %s)", ErrConfig, strings.Join(candidateFiles, ", "))
}

func checkFile(path, what string) (string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found at path: %s", ErrConfig, what, path)
	}
	if fileInfo.IsDir() {
		return "", fmt.Errorf("%w: %s points to a directory: %s", ErrConfig, what, path)
	}
	return filepath.Abs(path)
}
