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
	"log"

	"github.com/spf13/cobra"

	"github.com/notapipeline/rncrypt/pkg/types"
)

var cryptCmd types.CryptCmd = types.CryptCmd{}

var fatal func(format string, v ...interface{}) = func(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rncrypt",
	Short: "Symmetric file and message cryptor",
	Long: `
Symmetric file and message cryptor

Encrypts files or standard input into self describing envelopes:
AES-256-CBC ciphertext carrying its own header, authenticated end to
end with HMAC-SHA-256. Envelopes are keyed either by a passphrase,
stretched through PBKDF2, or by a generated key pair (see genkey).

Both encryption and decryption stream, so inputs of any size can be
processed in constant memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fatal("Error: %s", err)
	}
}

func init() {
	// These are conistent across all commands
	rootCmd.PersistentFlags().StringVarP(&cryptCmd.Input, "input", "i", "", "input file (default is stdin)")
	rootCmd.PersistentFlags().StringVarP(&cryptCmd.Output, "output", "o", "", "output file (default is stdout)")
	rootCmd.PersistentFlags().BoolVarP(&cryptCmd.Armor, "armor", "a", false, "base64 armor the envelope")
	rootCmd.PersistentFlags().BoolVar(&cryptCmd.Quiet, "quiet", false, "disable all logging")
}
