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

// Encryptor produces an envelope incrementally: header, then whole
// ciphertext blocks as they become available, then the final padded
// block and the MAC from Finish.
//
// Update and Finish cannot fail; every construction error is reported
// before any byte is accepted.
type Encryptor struct {
	// header is pending until the first output byte is produced. It is
	// fed to the MAC once, at construction, before any ciphertext.
	header []byte

	cipher *crypto.Encrypter
	mac    *crypto.MAC
}

// NewEncryptor creates a password keyed Encryptor with fresh random
// salts and IV.
func NewEncryptor(password string) (*Encryptor, error) {
	return newPasswordEncryptor(
		[]byte(password),
		crypto.RandomBytes(format.SaltSize),
		crypto.RandomBytes(format.SaltSize),
		crypto.RandomBytes(format.IVSize),
	)
}

// NewEncryptorWithKeys creates an Encryptor from a caller supplied
// encryption and HMAC key pair, with a fresh random IV.
func NewEncryptorWithKeys(encKey, hmacKey []byte) (*Encryptor, error) {
	return newKeyEncryptor(encKey, hmacKey, crypto.RandomBytes(format.IVSize))
}

// newPasswordEncryptor is the deterministic construction path. Only
// tests may choose the salts and IV; encrypting with attacker known
// randomness voids every security property of the format.
func newPasswordEncryptor(password, encSalt, hmacSalt, iv []byte) (*Encryptor, error) {
	if len(password) == 0 {
		return nil, types.EmptyPasswordError{}
	}
	if len(encSalt) != format.SaltSize {
		return nil, types.InvalidSaltSizeError{Size: len(encSalt)}
	}
	if len(hmacSalt) != format.SaltSize {
		return nil, types.InvalidSaltSizeError{Size: len(hmacSalt)}
	}
	if len(iv) != format.IVSize {
		return nil, types.InvalidIVSizeError{Size: len(iv)}
	}

	encKey := format.KeyForPassword(password, encSalt)
	hmacKey := format.KeyForPassword(password, hmacSalt)
	e := newEncryptor(encKey, hmacKey, format.NewPasswordHeader(encSalt, hmacSalt, iv))
	crypto.Wipe(encKey)
	crypto.Wipe(hmacKey)
	return e, nil
}

func newKeyEncryptor(encKey, hmacKey, iv []byte) (*Encryptor, error) {
	if len(encKey) != format.KeySize {
		return nil, types.InvalidKeySizeError{Size: len(encKey)}
	}
	if len(hmacKey) != format.KeySize {
		return nil, types.InvalidKeySizeError{Size: len(hmacKey)}
	}
	if len(iv) != format.IVSize {
		return nil, types.InvalidIVSizeError{Size: len(iv)}
	}
	return newEncryptor(encKey, hmacKey, format.NewKeyHeader(iv)), nil
}

func newEncryptor(encKey, hmacKey []byte, h format.Header) *Encryptor {
	e := &Encryptor{
		header: h.Bytes(),
		cipher: crypto.NewEncrypter(encKey, h.IV),
		mac:    crypto.NewMAC(hmacKey),
	}
	e.mac.Update(e.header)
	return e
}

// Update absorbs plaintext and returns the envelope bytes that are
// ready. The first non-empty return carries the header prefix.
func (e *Encryptor) Update(p []byte) []byte {
	out := e.cipher.Update(p)
	e.mac.Update(out)
	if e.header != nil {
		out = append(e.header, out...)
		e.header = nil
	}
	return out
}

// Finish emits the final padded block followed by the 32 byte MAC. The
// Encryptor must not be used afterwards.
func (e *Encryptor) Finish() []byte {
	tail := e.cipher.Finish()
	e.mac.Update(tail)

	out := tail
	if e.header != nil {
		out = append(e.header, out...)
		e.header = nil
	}
	out = append(out, e.mac.Finish()...)
	e.cipher, e.mac = nil, nil
	return out
}
