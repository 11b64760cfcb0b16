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

// credential is either a password or a pair of 32 byte keys.
type credential struct {
	password []byte
	encKey   []byte
	hmacKey  []byte
}

func (c credential) options() byte {
	if c.password != nil {
		return format.OptionsUsePassword
	}
	return format.OptionsUseKeys
}

func (c *credential) wipe() {
	crypto.Wipe(c.password)
	c.password, c.encKey, c.hmacKey = nil, nil, nil
}

// formatVersion describes one recognisable envelope version. newEngine
// returns a nil engine without error while the buffered bytes do not
// yet hold a complete header.
type formatVersion struct {
	preambleSize int
	canDecrypt   func(preamble []byte) bool
	newEngine    func(c credential, buffered []byte) (engine, int, error)
}

var formatVersions = []formatVersion{
	{
		preambleSize: 1,
		canDecrypt: func(p []byte) bool {
			return p[0] == format.Version
		},
		newEngine: newV3,
	},
}

var maxPreambleSize = func() int {
	var max int
	for _, v := range formatVersions {
		if v.preambleSize > max {
			max = v.preambleSize
		}
	}
	return max
}()

func newV3(c credential, buffered []byte) (engine, int, error) {
	if len(buffered) < 2 {
		return nil, 0, nil
	}
	options := buffered[1]
	if options != c.options() {
		return nil, 0, types.InvalidCredentialTypeError{Options: options}
	}

	size := format.HeaderSize(options)
	if len(buffered) < size {
		return nil, 0, nil
	}

	h := format.ParseHeader(buffered[:size])
	encKey, hmacKey := c.encKey, c.hmacKey
	if options == format.OptionsUsePassword {
		encKey = format.KeyForPassword(c.password, h.EncryptionSalt)
		hmacKey = format.KeyForPassword(c.password, h.HMACSalt)
		defer crypto.Wipe(encKey)
		defer crypto.Wipe(hmacKey)
	}
	return newEngineV3(encKey, hmacKey, h), size, nil
}

// Decryptor identifies the envelope version from the leading bytes,
// parses the header and hands the remainder of the stream to the
// matching engine. Until an engine is installed, input accumulates in
// a scratch buffer; afterwards the scratch is never touched again.
type Decryptor struct {
	cred    credential
	scratch []byte
	engine  engine
}

// NewDecryptor creates a password keyed Decryptor. The two envelope
// keys are derived once the header's salts have arrived.
func NewDecryptor(password string) (*Decryptor, error) {
	if password == "" {
		return nil, types.EmptyPasswordError{}
	}
	return &Decryptor{cred: credential{password: []byte(password)}}, nil
}

// NewDecryptorWithKeys creates a Decryptor for envelopes keyed by a
// caller supplied pair.
func NewDecryptorWithKeys(encKey, hmacKey []byte) (*Decryptor, error) {
	if len(encKey) != format.KeySize {
		return nil, types.InvalidKeySizeError{Size: len(encKey)}
	}
	if len(hmacKey) != format.KeySize {
		return nil, types.InvalidKeySizeError{Size: len(hmacKey)}
	}
	return &Decryptor{cred: credential{
		encKey:  append([]byte(nil), encKey...),
		hmacKey: append([]byte(nil), hmacKey...),
	}}, nil
}

// Update absorbs envelope bytes and returns any plaintext that is
// ready. It fails with types.UnknownHeaderError when no registered
// version recognises the message and types.InvalidCredentialTypeError
// when the header calls for the other kind of credential.
func (d *Decryptor) Update(p []byte) ([]byte, error) {
	if d.engine != nil {
		return d.engine.Update(p)
	}

	d.scratch = append(d.scratch, p...)
	for _, v := range formatVersions {
		if len(d.scratch) < v.preambleSize || !v.canDecrypt(d.scratch[:v.preambleSize]) {
			continue
		}
		eng, consumed, err := v.newEngine(d.cred, d.scratch)
		if err != nil {
			return nil, err
		}
		if eng == nil {
			// header incomplete, wait for more bytes
			return nil, nil
		}

		d.engine = eng
		rest := d.scratch[consumed:]
		d.scratch = nil
		d.cred.wipe()
		return d.engine.Update(rest)
	}

	if len(d.scratch) >= maxPreambleSize {
		preamble := append([]byte(nil), d.scratch[:maxPreambleSize]...)
		return nil, types.UnknownHeaderError{Value: preamble}
	}
	return nil, nil
}

// Finish flushes the engine and verifies the MAC. Called before a
// complete header has arrived it fails with types.MessageTooShortError,
// or types.UnknownHeaderError when the buffered bytes match no version.
func (d *Decryptor) Finish() ([]byte, error) {
	if d.engine == nil {
		for _, v := range formatVersions {
			if len(d.scratch) >= v.preambleSize && v.canDecrypt(d.scratch[:v.preambleSize]) {
				return nil, types.MessageTooShortError{}
			}
		}
		if len(d.scratch) == 0 {
			return nil, types.MessageTooShortError{}
		}
		return nil, types.UnknownHeaderError{Value: d.scratch}
	}
	return d.engine.Finish()
}
