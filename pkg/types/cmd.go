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
package types

type CryptCmd struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	KeyFile    string `yaml:"keyfile" env:"RNCRYPT_KEYFILE"`
	Armor      bool   `yaml:"armor" env:"RNCRYPT_ARMOR"`
	NoPinentry bool   `yaml:"nopinentry" env:"RNCRYPT_NOPINENTRY"`
	Quiet      bool   `yaml:"quiet" env:"RNCRYPT_QUIET"`
}

// Merge applies config file and environment defaults onto flags that
// were not set on the command line. Input and Output are not merged and
// come from the command line only.
func (c *CryptCmd) Merge(o *CryptCmd) {
	if c.KeyFile == "" {
		c.KeyFile = o.KeyFile
	}
	if !c.Armor {
		c.Armor = o.Armor
	}
	if !c.NoPinentry {
		c.NoPinentry = o.NoPinentry
	}
	if !c.Quiet {
		c.Quiet = o.Quiet
	}
}

// KeyFile is the on-disk format written by genkey and read back by the
// encrypt and decrypt commands.
type KeyFile struct {
	ID            string `yaml:"id"`
	EncryptionKey string `yaml:"enc"`
	HMACKey       string `yaml:"mac"`
}
