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

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRoundTripProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25

	properties := gopter.NewProperties(parameters)

	properties.Property("password round-trip recovers the message", prop.ForAll(
		func(message []byte, password string) bool {
			if password == "" {
				return true
			}
			envelope, err := Encrypt(message, password)
			if err != nil {
				return false
			}
			out, err := Decrypt(envelope, password)
			return err == nil && bytes.Equal(out, message)
		},
		gen.SliceOf(gen.UInt8()),
		gen.AnyString(),
	))

	properties.Property("key round-trip recovers the message", prop.ForAll(
		func(message []byte) bool {
			encKey := append([]byte(nil), bytes.Repeat([]byte{0x5a}, 32)...)
			hmacKey := append([]byte(nil), bytes.Repeat([]byte{0xa5}, 32)...)
			envelope, err := EncryptWithKeys(message, encKey, hmacKey)
			if err != nil {
				return false
			}
			out, err := DecryptWithKeys(envelope, encKey, hmacKey)
			return err == nil && bytes.Equal(out, message)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("decryption is chunking independent", prop.ForAll(
		func(message []byte, splits []int) bool {
			envelope, err := Encrypt(message, "partition")
			if err != nil {
				return false
			}

			d, err := NewDecryptor("partition")
			if err != nil {
				return false
			}

			var out []byte
			rest := envelope
			for _, split := range splits {
				if len(rest) == 0 {
					break
				}
				n := split % len(rest)
				part, err := d.Update(rest[:n])
				if err != nil {
					return false
				}
				out = append(out, part...)
				rest = rest[n:]
			}
			part, err := d.Update(rest)
			if err != nil {
				return false
			}
			out = append(out, part...)

			tail, err := d.Finish()
			if err != nil {
				return false
			}
			return bytes.Equal(append(out, tail...), message)
		},
		gen.SliceOf(gen.UInt8()),
		gen.SliceOf(gen.IntRange(0, 200)),
	))

	properties.TestingRun(t)
}
