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
Package crypto wraps the primitives used by the envelope format: AES-256
in CBC mode with PKCS#7 padding, HMAC-SHA-256, PBKDF2-HMAC-SHA1 and the
system CSPRNG.

The wrappers exist to keep the primitive library choice in one place and
to make the callers testable. The Encrypter, Decrypter and MAC types are
incremental: bytes are absorbed with Update and the trailing state is
flushed exactly once with Finish, after which the object must not be
used again. Misuse of a finished object is a programming error, not a
recoverable condition.

Key material passed into this package is copied by the underlying
primitives at construction time. Callers that derive keys should wipe
their copies once the engines have been built:

	enc := crypto.NewEncrypter(key, iv)
	mac := crypto.NewMAC(macKey)
	crypto.Wipe(key)
	crypto.Wipe(macKey)

Wipe is backed by memguard so the compiler cannot elide the overwrite.
*/
package crypto
