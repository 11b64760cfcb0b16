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
package cache

import (
	"sync"

	"github.com/awnumar/memguard"

	"github.com/notapipeline/rncrypt/pkg/types"
)

// PassphraseCache holds the passphrase in a memguard enclave so that a
// single prompt can serve every envelope processed by one invocation.
//
// Initialization of this object is done in a singleton fashion so the
// passphrase exists in exactly one sealed copy. The plaintext buffer
// handed to Set is wiped as it is moved into locked memory.
type PassphraseCache struct {
	enclave *memguard.Enclave
}

var (
	passphraseCache *PassphraseCache
	lock            = &sync.Mutex{}
)

// Instance gets the current instance or creates a new passphrase cache.
var Instance = instance

func instance() *PassphraseCache {
	lock.Lock()
	defer lock.Unlock()
	if passphraseCache == nil {
		passphraseCache = &PassphraseCache{}
	}
	return passphraseCache
}

// Reset the passphrase cache
func Reset() {
	lock.Lock()
	defer lock.Unlock()
	passphraseCache = nil
}

// IsSet reports whether a passphrase has been stored.
func (c *PassphraseCache) IsSet() bool {
	return c.enclave != nil
}

// Set seals password into locked memory. The supplied slice is
// destroyed in the process and must not be reused.
func (c *PassphraseCache) Set(password []byte) {
	buf := memguard.NewBufferFromBytes(password)
	c.enclave = buf.Seal()
}

// Open returns a fresh copy of the stored passphrase. Callers should
// wipe the copy once the keys have been derived from it.
func (c *PassphraseCache) Open() ([]byte, error) {
	if c.enclave == nil {
		return nil, nil
	}
	buf, err := c.enclave.Open()
	if err != nil {
		return nil, types.MemoryError{Err: err}
	}
	defer buf.Destroy()
	return append([]byte(nil), buf.Bytes()...), nil
}
