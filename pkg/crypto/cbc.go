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
	"fmt"
)

func newCBC(key, iv []byte, decrypt bool) cipher.BlockMode {
	block, err := newAesCipher(key)
	if err != nil {
		// key sizes are validated at the public boundary; reaching here
		// is a programming error
		panic(fmt.Sprintf("crypto: bad AES key: %v", err))
	}
	if decrypt {
		return cipher.NewCBCDecrypter(block, iv)
	}
	return cipher.NewCBCEncrypter(block, iv)
}

// Encrypter is an incremental AES-256-CBC encrypter with PKCS#7
// padding. Whole blocks are emitted as they become available; the
// final, padded block is emitted by Finish.
type Encrypter struct {
	mode cipher.BlockMode
	buf  []byte
}

// NewEncrypter creates an encrypter from a 32 byte key and a 16 byte IV.
func NewEncrypter(key, iv []byte) *Encrypter {
	return &Encrypter{mode: newCBC(key, iv, false)}
}

// Update absorbs p and returns any whole blocks of ciphertext. The
// returned slice is owned by the caller and may be empty.
func (e *Encrypter) Update(p []byte) []byte {
	e.buf = append(e.buf, p...)
	n := len(e.buf) &^ (aes.BlockSize - 1)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	e.mode.CryptBlocks(out, e.buf[:n])
	e.buf = append(e.buf[:0], e.buf[n:]...)
	return out
}

// Finish pads whatever remains and returns the final block. The
// encrypter must not be used afterwards.
func (e *Encrypter) Finish() []byte {
	padded := PadPKCS7(e.buf, aes.BlockSize)
	out := make([]byte, len(padded))
	e.mode.CryptBlocks(out, padded)
	e.mode, e.buf = nil, nil
	return out
}

// Decrypter is the incremental inverse of Encrypter. The last whole
// block is always withheld so that Finish can strip the padding once
// the stream is known to be complete.
type Decrypter struct {
	mode cipher.BlockMode
	buf  []byte
}

// NewDecrypter creates a decrypter from a 32 byte key and a 16 byte IV.
func NewDecrypter(key, iv []byte) *Decrypter {
	return &Decrypter{mode: newCBC(key, iv, true)}
}

// Update absorbs p and returns any plaintext that cannot be part of
// the final padded block.
func (d *Decrypter) Update(p []byte) []byte {
	d.buf = append(d.buf, p...)
	n := len(d.buf) &^ (aes.BlockSize - 1)
	if n == len(d.buf) {
		n -= aes.BlockSize
	}
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	d.mode.CryptBlocks(out, d.buf[:n])
	d.buf = append(d.buf[:0], d.buf[n:]...)
	return out
}

// Finish decrypts the withheld block and strips its padding. It fails
// when the accumulated ciphertext was not a whole number of blocks or
// when the padding is malformed; callers decrypting authenticated data
// must not surface that distinction to their own callers.
func (d *Decrypter) Finish() ([]byte, error) {
	defer func() {
		d.mode, d.buf = nil, nil
	}()
	if len(d.buf) != aes.BlockSize {
		return nil, fmt.Errorf("ciphertext is not a whole number of blocks")
	}
	out := make([]byte, aes.BlockSize)
	d.mode.CryptBlocks(out, d.buf)
	return UnpadPKCS7(out, aes.BlockSize)
}
