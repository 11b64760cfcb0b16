/*
 *   Copyright 2022 Martin Proffitt <mproffitt@choclab.net>
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
package tools

import (
	"os"

	"github.com/peterh/liner"
)

// Store locates the passphrase within the desktop secret stores. The
// zero value searches every wallet for a Passwords/rncrypt entry and
// tries both backends.
type Store struct {
	Backend string `yaml:"backend" env:"RNCRYPT_STORE"`
	Wallet  string `yaml:"wallet" env:"RNCRYPT_WALLET"`
	Folder  string `yaml:"folder" env:"RNCRYPT_FOLDER"`
	Entry   string `yaml:"entry" env:"RNCRYPT_ENTRY"`
}

const (
	// StoreKWallet and StoreSecretService restrict the lookup to a
	// single backend; an empty Backend tries both and any other value
	// consults neither.
	StoreKWallet       = "kwallet"
	StoreSecretService = "secret-service"
)

func (s Store) withDefaults() Store {
	if s.Folder == "" {
		s.Folder = "Passwords"
	}
	if s.Entry == "" {
		s.Entry = "rncrypt"
	}
	return s
}

// GetPassphrase resolves the passphrase without prompting: the
// environment first, then whichever secret store backends the
// configuration allows. An empty return means nothing was found and
// the caller should prompt instead.
func GetPassphrase(s Store) string {
	if value, ok := os.LookupEnv("RNCRYPT_PASSWORD"); ok {
		return value
	}

	s = s.withDefaults()
	if s.Backend == "" || s.Backend == StoreKWallet {
		if value, err := lookupKWallet(s); err == nil {
			return value
		}
	}
	if s.Backend == "" || s.Backend == StoreSecretService {
		if value, err := lookupSecretService(s); err == nil {
			return value
		}
	}
	return ""
}

// ReadPassword reads a password from the user via STDIN
func ReadPassword(prompt string) ([]byte, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()
	var (
		password string
		err      error
	)
	if password, err = line.PasswordPrompt(prompt); err != nil {
		if err == liner.ErrPromptAborted {
			line.Close()
			os.Exit(0)
		}
		return nil, err
	}
	return []byte(password), nil
}

// ReadLine reads a line of text from the user via STDIN
func ReadLine(prompt string) ([]byte, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()
	var (
		value string
		err   error
	)
	if value, err = line.Prompt(prompt); err != nil {
		if err == liner.ErrPromptAborted {
			line.Close()
			os.Exit(0)
		}
		return nil, err
	}
	return []byte(value), nil
}
