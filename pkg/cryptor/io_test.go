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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notapipeline/rncrypt/pkg/types"
)

func TestEncryptDecryptCopy(t *testing.T) {
	message := bytes.Repeat([]byte("streamed through readers and writers. "), 5000)

	e, err := NewEncryptor(testPassword)
	assert.Nil(t, err)

	var envelope bytes.Buffer
	written, err := EncryptCopy(&envelope, bytes.NewReader(message), e, 1024)
	assert.Nil(t, err)
	assert.Equal(t, int64(envelope.Len()), written)

	d, err := NewDecryptor(testPassword)
	assert.Nil(t, err)

	var plaintext bytes.Buffer
	written, err = DecryptCopy(&plaintext, &envelope, d, 1024)
	assert.Nil(t, err)
	assert.Equal(t, int64(plaintext.Len()), written)
	assert.Equal(t, message, plaintext.Bytes())
}

func TestDecryptCopyTamperedStream(t *testing.T) {
	envelope, err := Encrypt([]byte("do not trust partial output"), testPassword)
	assert.Nil(t, err)
	envelope[len(envelope)-1] ^= 0x80

	d, err := NewDecryptor(testPassword)
	assert.Nil(t, err)

	var out bytes.Buffer
	_, err = DecryptCopy(&out, bytes.NewReader(envelope), d, 7)
	assert.Equal(t, types.HMACMismatchError{}, err)
}

func TestCopyDefaultChunkSize(t *testing.T) {
	e, err := NewEncryptor(testPassword)
	assert.Nil(t, err)

	var envelope bytes.Buffer
	_, err = EncryptCopy(&envelope, bytes.NewReader([]byte("zero selects the default")), e, 0)
	assert.Nil(t, err)

	d, err := NewDecryptor(testPassword)
	assert.Nil(t, err)

	var plaintext bytes.Buffer
	_, err = DecryptCopy(&plaintext, &envelope, d, 0)
	assert.Nil(t, err)
	assert.Equal(t, "zero selects the default", plaintext.String())
}
