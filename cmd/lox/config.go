package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgomes/lox/lox"
)

type fileConfig struct {
	RecursionLimit int `yaml:"recursion_limit"`
	StepQuota      int `yaml:"step_quota"`
}

// loadConfig reads interpreter limits from a YAML file. An empty path
// yields the zero Config so the engine applies its defaults.
func loadConfig(path string) (lox.Config, error) {
	if path == "" {
		return lox.Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return lox.Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return lox.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return lox.Config{
		RecursionLimit: fc.RecursionLimit,
		StepQuota:      fc.StepQuota,
	}, nil
}
