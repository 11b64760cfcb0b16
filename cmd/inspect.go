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
	"encoding/hex"
	"fmt"
	"io"

	"github.com/hokaccha/go-prettyjson"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notapipeline/rncrypt/pkg/format"
)

var inspectJSON bool

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe an envelope without decrypting it",
	Long: `Parse an envelope's header and trailer and describe its fields:
	format version, keying mode, salts, IV, ciphertext length and MAC.

	No credential is required and nothing is verified; the output
	describes what the envelope claims to be, not whether it is
	authentic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(cryptCmd.Input)
		if err != nil {
			return err
		}
		defer in.Close()

		var src io.Reader = in
		if cryptCmd.Armor {
			src = base64.NewDecoder(base64.StdEncoding, in)
		}

		data, err := io.ReadAll(src)
		if err != nil {
			return err
		}

		info, err := format.Inspect(data)
		if err != nil {
			return err
		}

		if inspectJSON {
			return printInfoJSON(info)
		}
		printInfoTable(info)
		return nil
	},
}

func printInfoJSON(info format.Info) error {
	out, err := prettyjson.Marshal(struct {
		Version        byte   `json:"version"`
		Mode           string `json:"mode"`
		EncryptionSalt string `json:"encryptionSalt,omitempty"`
		HMACSalt       string `json:"hmacSalt,omitempty"`
		IV             string `json:"iv"`
		CiphertextSize int    `json:"ciphertextSize"`
		MAC            string `json:"mac"`
	}{
		Version:        info.Version,
		Mode:           modeName(info),
		EncryptionSalt: hex.EncodeToString(info.EncryptionSalt),
		HMACSalt:       hex.EncodeToString(info.HMACSalt),
		IV:             hex.EncodeToString(info.IV),
		CiphertextSize: info.CiphertextSize,
		MAC:            hex.EncodeToString(info.MAC),
	})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printInfoTable(info format.Info) {
	t := table.NewWriter()
	t.SetOutputMirror(tableOutput)
	t.AppendRows([]table.Row{
		{"Version", info.Version},
		{"Mode", modeName(info)},
	})
	if info.PasswordBased {
		t.AppendRows([]table.Row{
			{"Encryption salt", hex.EncodeToString(info.EncryptionSalt)},
			{"HMAC salt", hex.EncodeToString(info.HMACSalt)},
		})
	}
	t.AppendRows([]table.Row{
		{"IV", hex.EncodeToString(info.IV)},
		{"Ciphertext bytes", info.CiphertextSize},
		{"MAC", hex.EncodeToString(info.MAC)},
	})
	t.Render()
}

func modeName(info format.Info) string {
	if info.PasswordBased {
		return "password"
	}
	return "key"
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the summary as JSON")
}
