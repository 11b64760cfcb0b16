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
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	cryptorand "crypto/rand"
	"crypto/sha1"
	"fmt"
	"hash"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	newAesCipher func(key []byte) (cipher.Block, error) = aes.NewCipher

	pbkdfKey func(password, salt []byte, iter, keyLen int, h func() hash.Hash) []byte = pbkdf2.Key

	randRead func(b []byte) (int, error) = func(b []byte) (int, error) {
		return io.ReadFull(cryptorand.Reader, b)
	}
)

// RandomBytes returns n bytes from the system CSPRNG.
//
// A CSPRNG read failure leaves no safe way to continue and is treated
// as fatal.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := randRead(b); err != nil {
		panic(fmt.Sprintf("crypto: CSPRNG read failed: %v", err))
	}
	return b
}

// DeriveKey stretches a password into a key of the requested size with
// PBKDF2-HMAC-SHA1.
func DeriveKey(password, salt []byte, iterations, size int) []byte {
	return pbkdfKey(password, salt, iterations, size, sha1.New)
}

// Equal compares two byte slices without leaking the position of the
// first differing byte. Slices of different lengths compare unequal
// immediately; the lengths themselves are not secret.
func Equal(a, b []byte) bool {
	return hmac.Equal(a, b)
}

// Wipe overwrites b in place. Keys derived from passwords should be
// wiped as soon as the cipher and MAC contexts have been constructed.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}
