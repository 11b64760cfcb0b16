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

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a file or stdin into an envelope",
	Long: `Encrypt a file, or stdin when no input is given, writing the envelope
	to a file or stdout.

	By default the envelope is keyed with a passphrase. The passphrase is
	taken from the RNCRYPT_PASSWORD environment variable or the desktop
	secrets store if either is set, otherwise you will be prompted via
	GPG Pinentry where available, falling back to the terminal.

	With --key-file, the envelope is keyed with the key pair from a file
	previously written by genkey and no passphrase is required.

	Input is streamed in chunks, so arbitrarily large files can be
	encrypted in constant memory. With --armor the envelope is base64
	encoded on the way out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		encryptor, err := newEncryptor()
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

		var (
			dst   io.Writer = out
			armor io.WriteCloser
		)
		if cryptCmd.Armor {
			armor = base64.NewEncoder(base64.StdEncoding, out)
			dst = armor
		}

		written, err := cryptor.EncryptCopy(dst, in, encryptor, cfg.ChunkSize)
		if err == nil && armor != nil {
			err = armor.Close()
		}
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		if !cryptCmd.Quiet {
			log.Printf("wrote %d envelope bytes", written)
		}
		return nil
	},
}

func newEncryptor() (*cryptor.Encryptor, error) {
	if cryptCmd.KeyFile != "" {
		encKey, hmacKey, err := loadKeyFile(cryptCmd.KeyFile)
		if err != nil {
			return nil, err
		}
		return cryptor.NewEncryptorWithKeys(encKey, hmacKey)
	}

	password, err := getPassword()
	if err != nil {
		return nil, err
	}
	return cryptor.NewEncryptor(password)
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVarP(&cryptCmd.KeyFile, "key-file", "k", "", "key pair file written by genkey")
}
