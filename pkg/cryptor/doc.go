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

/*
Package cryptor encrypts and decrypts self describing envelopes:
AES-256-CBC ciphertext carrying its own header and authenticated by a
trailing HMAC-SHA-256 tag over every preceding byte.

Both directions stream. An Encryptor or Decryptor is fed with Update as
bytes arrive and flushed exactly once with Finish; neither needs to know
the message length in advance. Decryption never releases the last 32
bytes it has seen - until the stream ends those bytes may be the MAC -
and verifies the tag in constant time before the final block of
plaintext is surfaced.

	enc, err := cryptor.NewEncryptor("secret")
	if err != nil { ... }
	envelope := enc.Update(message)
	envelope = append(envelope, enc.Finish()...)

	dec, err := cryptor.NewDecryptor("secret")
	if err != nil { ... }
	plaintext, err := dec.Update(envelope)
	if err != nil { ... }
	tail, err := dec.Finish()
	if err != nil { ... }
	plaintext = append(plaintext, tail...)

Any authenticity failure - a wrong password, a flipped bit past the
version and options bytes, a truncated MAC region, malformed final-block
padding - surfaces as the same types.HMACMismatchError, and partial
plaintext already returned by
Update must be discarded when Finish fails.

One-shot helpers Encrypt, Decrypt, EncryptWithKeys and DecryptWithKeys
wrap the streaming objects for callers that hold the whole message in
memory, and EncryptCopy/DecryptCopy bridge io.Reader and io.Writer.
*/
package cryptor
