/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v2"

	"github.com/notapipeline/rncrypt/pkg/tools"
	"github.com/notapipeline/rncrypt/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	ConfigPath func() string = getConfigPath
)

type Config struct {
	Crypt types.CryptCmd `yaml:"crypt"`
	Store tools.Store    `yaml:"store"`

	ChunkSize int `yaml:"chunksize" env:"RNCRYPT_CHUNKSIZE"`
}

func New() *Config {
	return &Config{}
}

// Load the config file from the user local config directory
//
// The config file will be loaded from ~/.config/rncrypt/config.yaml if
// it exists and then the environment will be checked for overrides.
//
// Callers merge command line options on top with types.CryptCmd.Merge.
func (c *Config) Load() (err error) {
	if err = c.loadYaml(); err != nil {
		return
	}
	if err = c.loadEnv(); err != nil {
		return
	}

	return
}

func (c *Config) loadYaml() (err error) {
	var (
		cp       string = ConfigPath()
		yamlFile []byte
	)

	if _, err = os.Stat(cp); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if yamlFile, err = os.ReadFile(cp); err != nil {
		return
	}
	return yaml.Unmarshal(yamlFile, c)
}

func (c *Config) loadEnv() error {
	return env.Parse(c)
}

func getConfigPath() string {
	home, _ := os.UserHomeDir()
	return fmt.Sprintf("%s/.config/rncrypt/config.yaml", home)
}
