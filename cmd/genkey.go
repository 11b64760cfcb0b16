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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/notapipeline/rncrypt/pkg/crypto"
	"github.com/notapipeline/rncrypt/pkg/format"
	"github.com/notapipeline/rncrypt/pkg/types"
)

// genkeyCmd represents the genkey command
var genkeyCmd = &cobra.Command{
	Use:   "genkey",
	Short: "Generate an envelope key pair",
	Long: `Generate a fresh encryption and HMAC key pair for key mode
	envelopes and write it as a key file.

	The file carries a random identifier alongside the two 32 byte keys
	so that pairs can be told apart once you have more than one. Pass
	the file to encrypt and decrypt with --key-file.

	Key files are written with owner-only permissions. Anyone holding
	the file can decrypt every envelope created with it, so store it
	accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyFile := types.KeyFile{
			ID:            uuid.New().String(),
			EncryptionKey: hex.EncodeToString(crypto.RandomBytes(format.KeySize)),
			HMACKey:       hex.EncodeToString(crypto.RandomBytes(format.KeySize)),
		}

		data, err := yaml.Marshal(keyFile)
		if err != nil {
			return err
		}

		if cryptCmd.Output == "" {
			fmt.Print(string(data))
			return nil
		}
		if err = os.WriteFile(cryptCmd.Output, data, 0600); err != nil {
			return err
		}
		if !cryptCmd.Quiet {
			fmt.Printf("wrote key pair %s to %s\n", keyFile.ID, cryptCmd.Output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genkeyCmd)
}
