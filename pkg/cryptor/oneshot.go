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

// Encrypt is the one-shot form of the password keyed Encryptor.
func Encrypt(data []byte, password string) ([]byte, error) {
	e, err := NewEncryptor(password)
	if err != nil {
		return nil, err
	}
	out := e.Update(data)
	return append(out, e.Finish()...), nil
}

// EncryptWithKeys is the one-shot form of the key pair Encryptor.
func EncryptWithKeys(data, encKey, hmacKey []byte) ([]byte, error) {
	e, err := NewEncryptorWithKeys(encKey, hmacKey)
	if err != nil {
		return nil, err
	}
	out := e.Update(data)
	return append(out, e.Finish()...), nil
}

// Decrypt is the one-shot form of the password keyed Decryptor.
func Decrypt(data []byte, password string) ([]byte, error) {
	d, err := NewDecryptor(password)
	if err != nil {
		return nil, err
	}
	return drain(d, data)
}

// DecryptWithKeys is the one-shot form of the key pair Decryptor.
func DecryptWithKeys(data, encKey, hmacKey []byte) ([]byte, error) {
	d, err := NewDecryptorWithKeys(encKey, hmacKey)
	if err != nil {
		return nil, err
	}
	return drain(d, data)
}

func drain(d *Decryptor, data []byte) ([]byte, error) {
	out, err := d.Update(data)
	if err != nil {
		return nil, err
	}
	tail, err := d.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, tail...), nil
}
