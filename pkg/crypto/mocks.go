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
	"crypto/cipher"
	"hash"
)

// CryptoMock carries replacement primitives for tests. Swap the
// matching package function variables and restore them when done.
type CryptoMock struct {
	NewAesCipher func(key []byte) (cipher.Block, error)
	PbkdfKey     func(password, salt []byte, iter, keyLen int, h func() hash.Hash) []byte
	RandRead     func(b []byte) (int, error)
}
