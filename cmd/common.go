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
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/twpayne/go-pinentry"
	"gopkg.in/yaml.v2"

	"github.com/notapipeline/rncrypt/pkg/cache"
	"github.com/notapipeline/rncrypt/pkg/config"
	"github.com/notapipeline/rncrypt/pkg/format"
	"github.com/notapipeline/rncrypt/pkg/tools"
	"github.com/notapipeline/rncrypt/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var getPassword func() (string, error) = func() (string, error) {
	if value := lookupPassphrase(secretStore); value != "" {
		return value, nil
	}

	var store *cache.PassphraseCache = cache.Instance()
	if store.IsSet() {
		var (
			password []byte
			err      error
		)
		if password, err = store.Open(); err != nil {
			return "", err
		}
		return string(password), nil
	}

	var (
		err         error
		client      *pinentry.Client
		password    string
		usePinentry bool = !cryptCmd.NoPinentry
	)

	if usePinentry {
		if client, err = getPinentry(
			pinentry.WithBinaryNameFromGnuPGAgentConf(),
			pinentry.WithDesc("Please enter the envelope passphrase."),
			pinentry.WithGPGTTY(),
			pinentry.WithPrompt("Passphrase:"),
			pinentry.WithTitle("Envelope passphrase"),
		); err != nil {
			usePinentry = false
		}
	}

	if usePinentry {
		defer client.Close()
		password, _, err = client.GetPIN()
		if pinentry.IsCancelled(err) {
			return "", fmt.Errorf("Cancelled")
		}
	} else if password, err = readPassword("Please enter the envelope passphrase: "); err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("No passphrase provided")
	}
	password = strings.TrimSpace(password)

	store.Set([]byte(password))
	return password, err
}

var getPinentry func(options ...pinentry.ClientOption) (c *pinentry.Client, err error) = func(options ...pinentry.ClientOption) (c *pinentry.Client, err error) {
	return pinentry.NewClient(options...)
}

var readPassword func(prompt string) (string, error) = func(prompt string) (string, error) {
	b, err := tools.ReadPassword(prompt)
	return string(b), err
}

var lookupPassphrase func(store tools.Store) string = tools.GetPassphrase

// secretStore is populated from the loaded configuration before any
// passphrase lookup happens.
var secretStore tools.Store

var osRemove func(path string) error = os.Remove

var tableOutput io.Writer = os.Stdout

var loadKeyFile func(path string) ([]byte, []byte, error) = func(path string) ([]byte, []byte, error) {
	var (
		data    []byte
		keyFile types.KeyFile
		err     error
	)

	if data, err = os.ReadFile(path); err != nil {
		return nil, nil, err
	}
	if err = yaml.Unmarshal(data, &keyFile); err != nil {
		return nil, nil, err
	}

	var encKey, hmacKey []byte
	if encKey, err = hex.DecodeString(keyFile.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("malformed encryption key in %s: %w", path, err)
	}
	if hmacKey, err = hex.DecodeString(keyFile.HMACKey); err != nil {
		return nil, nil, fmt.Errorf("malformed HMAC key in %s: %w", path, err)
	}
	if len(encKey) != format.KeySize || len(hmacKey) != format.KeySize {
		return nil, nil, fmt.Errorf("keys in %s must be %d bytes", path, format.KeySize)
	}
	return encKey, hmacKey, nil
}

// loadConfig merges the config file and environment onto any flags not
// set on the command line.
func loadConfig() (*config.Config, error) {
	var c *config.Config = config.New()
	if err := c.Load(); err != nil {
		return nil, err
	}
	cryptCmd.Merge(&c.Crypt)
	secretStore = c.Store
	return c, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
