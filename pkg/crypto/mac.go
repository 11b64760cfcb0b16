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
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
)

// MACSize is the length of a finished HMAC-SHA-256 tag.
const MACSize = sha256.Size

// MAC is an incremental HMAC-SHA-256.
type MAC struct {
	h hash.Hash
}

// NewMAC creates a MAC keyed with key.
func NewMAC(key []byte) *MAC {
	return &MAC{h: hmac.New(sha256.New, key)}
}

// Update absorbs p.
func (m *MAC) Update(p []byte) {
	m.h.Write(p)
}

// Finish returns the 32 byte tag. The MAC must not be used afterwards.
func (m *MAC) Finish() []byte {
	sum := m.h.Sum(nil)
	m.h = nil
	return sum
}
