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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-pinentry"

	"github.com/notapipeline/rncrypt/pkg/cache"
	"github.com/notapipeline/rncrypt/pkg/tools"
)

func TestGetPasswordFromEnvironmentOrStore(t *testing.T) {
	cache.Reset()
	orig := lookupPassphrase
	origStore := secretStore
	secretStore = tools.Store{Wallet: "testwallet", Entry: "testentry"}
	lookupPassphrase = func(store tools.Store) string {
		if store.Wallet != "testwallet" || store.Entry != "testentry" {
			t.Errorf("Expected the configured store to reach the lookup, got %+v", store)
		}
		return "from-the-store"
	}
	defer func() {
		lookupPassphrase = orig
		secretStore = origStore
	}()

	password, err := getPassword()
	assert.Nil(t, err)
	assert.Equal(t, "from-the-store", password)
}

func TestGetPasswordPromptFallback(t *testing.T) {
	cache.Reset()
	origLookup := lookupPassphrase
	origPinentry := getPinentry
	origRead := readPassword
	defer func() {
		lookupPassphrase = origLookup
		getPinentry = origPinentry
		readPassword = origRead
		cache.Reset()
	}()

	lookupPassphrase = func(store tools.Store) string { return "" }
	getPinentry = func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
		return nil, fmt.Errorf("no pinentry on this system")
	}

	var prompts int
	readPassword = func(prompt string) (string, error) {
		prompts++
		return "  prompted secret \n", nil
	}

	password, err := getPassword()
	assert.Nil(t, err)
	assert.Equal(t, "prompted secret", password)

	// second call must come from the cache, not another prompt
	password, err = getPassword()
	assert.Nil(t, err)
	assert.Equal(t, "prompted secret", password)
	assert.Equal(t, 1, prompts)
}

func TestGetPasswordEmptyPrompt(t *testing.T) {
	cache.Reset()
	origLookup := lookupPassphrase
	origPinentry := getPinentry
	origRead := readPassword
	defer func() {
		lookupPassphrase = origLookup
		getPinentry = origPinentry
		readPassword = origRead
	}()

	lookupPassphrase = func(store tools.Store) string { return "" }
	getPinentry = func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
		return nil, fmt.Errorf("no pinentry on this system")
	}
	readPassword = func(prompt string) (string, error) {
		return "", nil
	}

	_, err := getPassword()
	assert.NotNil(t, err)
}

func TestLoadKeyFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr string
	}{
		{
			name: "valid key file",
			content: "id: 0c013b6d-5360-46b2-9a2e-9065375e8229\n" +
				"enc: " + strings.Repeat("11", 32) + "\n" +
				"mac: " + strings.Repeat("22", 32) + "\n",
		},
		{
			name:        "malformed hex",
			content:     "id: x\nenc: zz\nmac: 22\n",
			expectedErr: "malformed encryption key",
		},
		{
			name: "wrong key length",
			content: "id: x\nenc: " + strings.Repeat("11", 16) + "\n" +
				"mac: " + strings.Repeat("22", 32) + "\n",
			expectedErr: "must be 32 bytes",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pair.yaml")
			if err := os.WriteFile(path, []byte(test.content), 0600); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			encKey, hmacKey, err := loadKeyFile(path)
			if test.expectedErr != "" {
				assert.NotNil(t, err)
				assert.Contains(t, err.Error(), test.expectedErr)
				return
			}
			assert.Nil(t, err)
			assert.Len(t, encKey, 32)
			assert.Len(t, hmacKey, 32)
		})
	}
}

func TestLoadKeyFileMissing(t *testing.T) {
	_, _, err := loadKeyFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NotNil(t, err)
}
