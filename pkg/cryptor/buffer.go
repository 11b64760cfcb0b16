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

// overflowingBuffer retains the most recent capacity bytes fed to it
// and yields everything older, in order, as overflow. After T bytes of
// input it holds exactly min(T, capacity) bytes and has returned
// max(0, T-capacity).
//
// The decryptor runs all input through one of these with the MAC size
// as capacity: whatever is retained when the stream ends is the
// candidate MAC, and only overflow is ever decrypted.
type overflowingBuffer struct {
	capacity int
	buf      []byte
}

func newOverflowingBuffer(capacity int) *overflowingBuffer {
	return &overflowingBuffer{
		capacity: capacity,
		buf:      make([]byte, 0, capacity),
	}
}

// Update absorbs p and returns the oldest bytes that no longer fit,
// drawn first from the retained tail and then from the front of p.
func (b *overflowingBuffer) Update(p []byte) []byte {
	total := len(b.buf) + len(p)
	if total <= b.capacity {
		b.buf = append(b.buf, p...)
		return nil
	}

	spill := total - b.capacity
	out := make([]byte, 0, spill)
	if spill >= len(b.buf) {
		out = append(out, b.buf...)
		out = append(out, p[:spill-len(b.buf)]...)
		b.buf = append(b.buf[:0], p[spill-len(b.buf):]...)
		return out
	}
	out = append(out, b.buf[:spill]...)
	b.buf = append(b.buf[:0], b.buf[spill:]...)
	b.buf = append(b.buf, p...)
	return out
}

// Finish returns the retained tail and clears the buffer.
func (b *overflowingBuffer) Finish() []byte {
	out := b.buf
	b.buf = nil
	return out
}
