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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notapipeline/rncrypt/pkg/format"
	"github.com/notapipeline/rncrypt/pkg/types"
)

func TestDecryptVectors(t *testing.T) {
	tests := []struct {
		name      string
		envelope  string
		plaintext string
	}{
		{"empty plaintext", envelopeEmpty, ""},
		{"one byte", envelopeOneByte, "\x01"},
		{"single block", envelopeHello, "Hello, World!"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := Decrypt(unhex(t, test.envelope), testPassword)
			assert.Nil(t, err)
			assert.Equal(t, test.plaintext, string(out))
		})
	}
}

func TestDecryptChunkingEquivalence(t *testing.T) {
	envelope := unhex(t, envelopeHello)

	for size := 1; size <= len(envelope)+1; size++ {
		d, err := NewDecryptor(testPassword)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		var out []byte
		for _, chunk := range chunked(envelope, size) {
			part, err := d.Update(chunk)
			if err != nil {
				t.Fatalf("Unexpected error at chunk size %d: %v", size, err)
			}
			out = append(out, part...)
		}
		tail, err := d.Finish()
		if err != nil {
			t.Fatalf("Unexpected error at chunk size %d: %v", size, err)
		}
		if out = append(out, tail...); !bytes.Equal(out, []byte("Hello, World!")) {
			t.Fatalf("Chunk size %d produced %q", size, out)
		}
	}
}

// Flipping any single byte of the envelope past the version and options
// bytes, salts and IV included, must be reported as an authentication
// failure and nothing else.
func TestDecryptTamperDetection(t *testing.T) {
	envelope := unhex(t, envelopeHello)

	for i := range envelope {
		tampered := append([]byte(nil), envelope...)
		tampered[i] ^= 0x01

		_, err := Decrypt(tampered, testPassword)
		if err == nil {
			t.Fatalf("Tampering with byte %d went undetected", i)
		}
		// flipping the low bit of the version or options byte changes
		// the envelope's identity rather than its integrity
		switch i {
		case 0:
			assert.ErrorAs(t, err, &types.UnknownHeaderError{}, "byte %d", i)
		case 1:
			assert.ErrorAs(t, err, &types.InvalidCredentialTypeError{}, "byte %d", i)
		default:
			assert.Equal(t, types.HMACMismatchError{}, err, "byte %d", i)
		}
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	_, err := Decrypt(unhex(t, envelopeHello), "wrongpassword")
	assert.Equal(t, types.HMACMismatchError{}, err)
}

func TestDecryptTruncation(t *testing.T) {
	envelope := unhex(t, envelopeHello)

	for keep := len(envelope) - 1; keep > 0; keep-- {
		_, err := Decrypt(envelope[:keep], testPassword)
		if err == nil {
			t.Fatalf("Truncation to %d bytes went undetected", keep)
		}
		switch {
		case keep >= format.PasswordHeaderSize:
			assert.Equal(t, types.HMACMismatchError{}, err, "keep %d", keep)
		default:
			assert.Equal(t, types.MessageTooShortError{}, err, "keep %d", keep)
		}
	}
}

func TestDecryptEmptyMessage(t *testing.T) {
	_, err := Decrypt(nil, testPassword)
	assert.Equal(t, types.MessageTooShortError{}, err)
}

func TestDecryptUnknownVersion(t *testing.T) {
	envelope := unhex(t, envelopeHello)
	envelope[0] = 0x02

	d, err := NewDecryptor(testPassword)
	assert.Nil(t, err)
	_, err = d.Update(envelope)

	var unknown types.UnknownHeaderError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, []byte{0x02}, unknown.Value)
}

func TestDecryptCredentialMismatch(t *testing.T) {
	key := make([]byte, 32)

	t.Run("password envelope with key credential", func(t *testing.T) {
		d, err := NewDecryptorWithKeys(key, key)
		assert.Nil(t, err)
		_, err = d.Update(unhex(t, envelopeHello))
		assert.Equal(t, types.InvalidCredentialTypeError{Options: format.OptionsUsePassword}, err)
	})

	t.Run("key envelope with password credential", func(t *testing.T) {
		envelope, err := EncryptWithKeys([]byte("secret"), key, key)
		assert.Nil(t, err)

		d, err := NewDecryptor(testPassword)
		assert.Nil(t, err)
		_, err = d.Update(envelope)
		assert.Equal(t, types.InvalidCredentialTypeError{Options: format.OptionsUseKeys}, err)
	})
}

func TestDecryptorFinishBeforeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{"no input", nil, types.MessageTooShortError{}},
		{"recognised preamble, incomplete header", []byte{0x03, 0x01, 0xaa}, types.MessageTooShortError{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := NewDecryptor(testPassword)
			assert.Nil(t, err)
			if test.input != nil {
				_, err = d.Update(test.input)
				assert.Nil(t, err)
			}
			_, err = d.Finish()
			assert.Equal(t, test.expected, err)
		})
	}
}

func TestDecryptorHeaderAcrossUpdates(t *testing.T) {
	envelope := unhex(t, envelopeHello)

	d, err := NewDecryptor(testPassword)
	assert.Nil(t, err)

	// drip the header in one byte at a time; no plaintext may appear
	// until well past the header boundary
	var out []byte
	for i := 0; i < format.PasswordHeaderSize; i++ {
		part, err := d.Update(envelope[i : i+1])
		assert.Nil(t, err)
		assert.Empty(t, part)
		out = append(out, part...)
	}

	part, err := d.Update(envelope[format.PasswordHeaderSize:])
	assert.Nil(t, err)
	out = append(out, part...)

	tail, err := d.Finish()
	assert.Nil(t, err)
	assert.Equal(t, "Hello, World!", string(append(out, tail...)))
}

func TestDecryptKeyModeRoundTrip(t *testing.T) {
	encKey := bytes.Repeat([]byte{0x11}, 32)
	hmacKey := bytes.Repeat([]byte{0x22}, 32)
	message := []byte("a key mode message that spans several blocks of ciphertext")

	envelope, err := EncryptWithKeys(message, encKey, hmacKey)
	assert.Nil(t, err)

	out, err := DecryptWithKeys(envelope, encKey, hmacKey)
	assert.Nil(t, err)
	assert.Equal(t, message, out)
}

func TestDecryptorConstructionErrors(t *testing.T) {
	_, err := NewDecryptor("")
	assert.Equal(t, types.EmptyPasswordError{}, err)

	_, err = NewDecryptorWithKeys(make([]byte, 5), make([]byte, 32))
	assert.Equal(t, types.InvalidKeySizeError{Size: 5}, err)

	_, err = NewDecryptorWithKeys(make([]byte, 32), make([]byte, 64))
	assert.Equal(t, types.InvalidKeySizeError{Size: 64}, err)
}
