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
package cmd

import (
	"encoding/base64"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/notapipeline/rncrypt/pkg/cryptor"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an envelope back to plaintext",
	Long: `Decrypt an envelope file, or stdin when no input is given, writing
	the plaintext to a file or stdout.

	The credential must match the one the envelope was created with: a
	passphrase for passphrase envelopes, or --key-file for envelopes
	keyed by a generated pair.

	The envelope is authenticated as it streams. If the passphrase is
	wrong or the envelope has been modified or truncated, decryption
	fails and any partial output must be discarded; when writing to a
	file the partial file is removed automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		decryptor, err := newDecryptor()
		if err != nil {
			return err
		}

		in, err := openInput(cryptCmd.Input)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := openOutput(cryptCmd.Output)
		if err != nil {
			return err
		}

		var src io.Reader = in
		if cryptCmd.Armor {
			src = base64.NewDecoder(base64.StdEncoding, in)
		}

		written, err := cryptor.DecryptCopy(out, src, decryptor, cfg.ChunkSize)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			if cryptCmd.Output != "" {
				removeFile(cryptCmd.Output)
			}
			return err
		}

		if !cryptCmd.Quiet {
			log.Printf("wrote %d plaintext bytes", written)
		}
		return nil
	},
}

var removeFile func(path string) = func(path string) {
	if err := osRemove(path); err != nil && !cryptCmd.Quiet {
		log.Printf("unable to remove partial output %s: %v", path, err)
	}
}

func newDecryptor() (*cryptor.Decryptor, error) {
	if cryptCmd.KeyFile != "" {
		encKey, hmacKey, err := loadKeyFile(cryptCmd.KeyFile)
		if err != nil {
			return nil, err
		}
		return cryptor.NewDecryptorWithKeys(encKey, hmacKey)
	}

	password, err := getPassword()
	if err != nil {
		return nil, err
	}
	return cryptor.NewDecryptor(password)
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVarP(&cryptCmd.KeyFile, "key-file", "k", "", "key pair file written by genkey")
}
