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
package cryptor

import (
	"github.com/notapipeline/rncrypt/pkg/crypto"
	"github.com/notapipeline/rncrypt/pkg/format"
	"github.com/notapipeline/rncrypt/pkg/types"
)

// engine is the capability every format version's decryptor provides.
type engine interface {
	Update(p []byte) ([]byte, error)
	Finish() ([]byte, error)
}

// engineV3 decrypts the body of an envelope once the Decryptor has
// parsed the header. The invariant binding its three parts: every byte
// that has entered the tail buffer and overflowed has been fed to both
// the MAC and the cipher, so the 32 most recent bytes - the candidate
// MAC - are never decrypted.
type engineV3 struct {
	tail   *overflowingBuffer
	cipher *crypto.Decrypter
	mac    *crypto.MAC
}

func newEngineV3(encKey, hmacKey []byte, h format.Header) *engineV3 {
	e := &engineV3{
		tail:   newOverflowingBuffer(format.HMACSize),
		cipher: crypto.NewDecrypter(encKey, h.IV),
		mac:    crypto.NewMAC(hmacKey),
	}
	// mirror the encryptor: the header enters the MAC before any
	// ciphertext byte
	e.mac.Update(h.Bytes())
	return e
}

// Update absorbs envelope bytes and returns any plaintext that is
// certain not to be part of the final block or the MAC.
func (e *engineV3) Update(p []byte) ([]byte, error) {
	overflow := e.tail.Update(p)
	e.mac.Update(overflow)
	return e.cipher.Update(overflow), nil
}

// Finish verifies the candidate MAC against the computed tag and, on
// success, returns the final block of plaintext. The cipher runs to
// completion first and any padding failure is folded into the same
// mismatch error as a bad tag, so the two cannot be told apart.
func (e *engineV3) Finish() ([]byte, error) {
	plaintext, err := e.cipher.Finish()
	expected := e.mac.Finish()
	received := e.tail.Finish()

	ok := crypto.Equal(expected, received)
	if err != nil || !ok {
		return nil, types.HMACMismatchError{}
	}
	return plaintext, nil
}
