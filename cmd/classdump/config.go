package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// batchConfig is the shape of a --config YAML file: a list of class
// files to decode in one run, plus the output options that would
// otherwise have to be repeated as flags for every file.
type batchConfig struct {
	Files      []string `yaml:"files"`
	ShowAttrs  bool     `yaml:"show_attrs"`
	JSONOutput bool     `yaml:"json"`
}

func loadBatchConfig(path string) (*batchConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg batchConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
