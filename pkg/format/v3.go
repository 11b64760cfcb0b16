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

// Package format defines the version 3 envelope layout:
//
//	offset  size  field
//	  0      1    version = 0x03
//	  1      1    options: 0x00 = key based, 0x01 = password based
//	  2      8    encryption salt (password mode only)
//	 10      8    HMAC salt       (password mode only)
//	[2|18]  16    IV
//	 ...     n    ciphertext, AES-256-CBC with PKCS#7 padding
//	(end-32) 32   HMAC-SHA-256 over every preceding byte
package format

import (
	"crypto/aes"

	"github.com/notapipeline/rncrypt/pkg/crypto"
	"github.com/notapipeline/rncrypt/pkg/types"
)

const (
	// Version is the only envelope version this module reads or writes.
	Version byte = 0x03

	// OptionsUseKeys marks an envelope keyed by a caller supplied pair.
	OptionsUseKeys byte = 0x00

	// OptionsUsePassword marks an envelope keyed by PBKDF2 derived keys.
	OptionsUsePassword byte = 0x01

	// Iterations is the PBKDF2-HMAC-SHA1 iteration count.
	Iterations = 10000

	IVSize   = aes.BlockSize
	SaltSize = 8
	KeySize  = 32
	HMACSize = crypto.MACSize

	// KeyHeaderSize and PasswordHeaderSize are the two possible header
	// lengths: version and options bytes plus the IV, with the two salts
	// present only in password mode.
	KeyHeaderSize      = 2 + IVSize
	PasswordHeaderSize = 2 + 2*SaltSize + IVSize

	// MinMessageSize is the shortest well formed envelope: a key mode
	// header, one ciphertext block and the trailing MAC.
	MinMessageSize = KeyHeaderSize + aes.BlockSize + HMACSize
)

// KeyForPassword derives one of the two envelope keys from a password
// and its salt.
func KeyForPassword(password, salt []byte) []byte {
	return crypto.DeriveKey(password, salt, Iterations, KeySize)
}

// Header is the decoded prefix of an envelope.
type Header struct {
	Options        byte
	EncryptionSalt []byte
	HMACSalt       []byte
	IV             []byte
}

// NewKeyHeader builds the 18 byte key mode header.
func NewKeyHeader(iv []byte) Header {
	return Header{Options: OptionsUseKeys, IV: iv}
}

// NewPasswordHeader builds the 34 byte password mode header.
func NewPasswordHeader(encSalt, hmacSalt, iv []byte) Header {
	return Header{
		Options:        OptionsUsePassword,
		EncryptionSalt: encSalt,
		HMACSalt:       hmacSalt,
		IV:             iv,
	}
}

// Size returns the encoded length of the header.
func (h Header) Size() int {
	return HeaderSize(h.Options)
}

// Bytes encodes the header.
func (h Header) Bytes() []byte {
	out := make([]byte, 0, h.Size())
	out = append(out, Version, h.Options)
	if h.Options == OptionsUsePassword {
		out = append(out, h.EncryptionSalt...)
		out = append(out, h.HMACSalt...)
	}
	return append(out, h.IV...)
}

// HeaderSize returns the encoded header length for an options byte.
// Any options byte other than OptionsUsePassword takes the short form.
func HeaderSize(options byte) int {
	if options == OptionsUsePassword {
		return PasswordHeaderSize
	}
	return KeyHeaderSize
}

// ParseHeader decodes a complete header from the front of data. The
// caller must have checked that data holds at least HeaderSize(data[1])
// bytes.
func ParseHeader(data []byte) Header {
	h := Header{Options: data[1]}
	if h.Options == OptionsUsePassword {
		h.EncryptionSalt = append([]byte(nil), data[2:2+SaltSize]...)
		h.HMACSalt = append([]byte(nil), data[2+SaltSize:2+2*SaltSize]...)
		h.IV = append([]byte(nil), data[2+2*SaltSize:PasswordHeaderSize]...)
		return h
	}
	h.IV = append([]byte(nil), data[2:KeyHeaderSize]...)
	return h
}

// Info is the envelope summary produced by Inspect.
type Info struct {
	Version        byte   `json:"version"`
	Options        byte   `json:"options"`
	PasswordBased  bool   `json:"passwordBased"`
	EncryptionSalt []byte `json:"encryptionSalt,omitempty"`
	HMACSalt       []byte `json:"hmacSalt,omitempty"`
	IV             []byte `json:"iv"`
	CiphertextSize int    `json:"ciphertextSize"`
	MAC            []byte `json:"mac"`
}

// Inspect summarises an envelope without decrypting it. Nothing about
// the envelope is authenticated here; the summary describes what the
// bytes claim to be.
func Inspect(data []byte) (Info, error) {
	var info Info
	if len(data) == 0 {
		return info, types.MessageTooShortError{}
	}
	if data[0] != Version {
		return info, types.UnknownHeaderError{Value: data[:1]}
	}
	if len(data) < 2 {
		return info, types.MessageTooShortError{}
	}
	header := HeaderSize(data[1])
	if len(data) < header+aes.BlockSize+HMACSize {
		return info, types.MessageTooShortError{}
	}

	h := ParseHeader(data)
	info = Info{
		Version:        data[0],
		Options:        h.Options,
		PasswordBased:  h.Options == OptionsUsePassword,
		EncryptionSalt: h.EncryptionSalt,
		HMACSalt:       h.HMACSalt,
		IV:             h.IV,
		CiphertextSize: len(data) - header - HMACSize,
		MAC:            append([]byte(nil), data[len(data)-HMACSize:]...),
	}
	return info, nil
}
