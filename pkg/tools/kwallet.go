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
package tools

import (
	"fmt"

	"r00t2.io/gokwallet"
)

// lookupKWallet pulls the passphrase out of KWallet. Store.Wallet pins
// the search to one wallet; empty means any. Within the configured
// folder a plain password entry named Store.Entry is preferred, with a
// map entry of the same name as fallback so users can keep the
// passphrase alongside other keys.
func lookupKWallet(s Store) (string, error) {
	var opts gokwallet.RecurseOpts = *gokwallet.DefaultRecurseOpts
	opts.AllWalletItems = true

	wm, err := gokwallet.NewWalletManager(&opts, "rncrypt")
	if err != nil {
		return "", err
	}

	for name, wallet := range wm.Wallets {
		if s.Wallet != "" && name != s.Wallet {
			continue
		}
		folder, ok := wallet.Folders[s.Folder]
		if !ok {
			continue
		}

		if password, ok := folder.Passwords[s.Entry]; ok && password.Value != "" {
			return password.Value, nil
		}
		if m, ok := folder.Maps[s.Entry]; ok {
			if value, ok := m.Value["passphrase"]; ok && value != "" {
				return value, nil
			}
		}
	}
	return "", fmt.Errorf("kwallet holds no %s/%s entry", s.Folder, s.Entry)
}
