// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for texelslider.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const configName = "texelslider.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	path    string
	loadErr error
)

// Err returns the most recent load error. A missing file is not an error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the active configuration with defaults and environment
// overrides applied.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Path returns the file the active configuration was read from.
func Path() string {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return path
}

// UseFile switches the store to an explicit file and loads it.
func UseFile(file string) error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path = file
	loadErr = loadLocked()
	return loadErr
}

// Reload re-reads the active file.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
	return loadErr
}

// SetSystem replaces the in-memory config. Defaults are applied on top.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
	applyDefaults(system)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	p, err := defaultConfigPath()
	if err != nil {
		system = make(Config)
		applyDefaults(system)
		loadErr = err
		return
	}
	path = p
	loadErr = loadLocked()
}

func loadLocked() error {
	cfg, _, err := readConfig(path)
	if err != nil {
		err = fmt.Errorf("config: read %s: %w", path, err)
	}
	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	applyEnv(cfg, os.LookupEnv)
	system = cfg
	return err
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
