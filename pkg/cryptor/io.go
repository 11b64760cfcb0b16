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

import "io"

// DefaultChunkSize is the read size used by EncryptCopy and
// DecryptCopy when the caller passes 0.
const DefaultChunkSize = 64 * 1024

// EncryptCopy streams src through e into dst and returns the number of
// envelope bytes written. The Encryptor is finished on success and
// must not be reused.
func EncryptCopy(dst io.Writer, src io.Reader, e *Encryptor, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(e.Update(buf[:n]))
			written += int64(w)
			if werr != nil {
				return written, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, err
		}
	}

	w, err := dst.Write(e.Finish())
	return written + int64(w), err
}

// DecryptCopy streams src through d into dst and returns the number of
// plaintext bytes written. On any authentication failure the plaintext
// already written to dst must be discarded by the caller.
func DecryptCopy(dst io.Writer, src io.Reader, d *Decryptor, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			out, derr := d.Update(buf[:n])
			if derr != nil {
				return written, derr
			}
			w, werr := dst.Write(out)
			written += int64(w)
			if werr != nil {
				return written, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, err
		}
	}

	tail, err := d.Finish()
	if err != nil {
		return written, err
	}
	w, err := dst.Write(tail)
	return written + int64(w), err
}
