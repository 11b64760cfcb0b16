/*
 *   Copyright 2022 Martin Proffitt <mproffitt@choclab.net>
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
	"path"

	"r00t2.io/gosecret"
)

// lookupSecretService resolves the passphrase through the freedesktop
// secret service. Items are matched on a Path attribute built from the
// configured folder and entry, so the location mirrors the KWallet
// layout and both backends can be pointed at the same logical slot.
func lookupSecretService(s Store) (string, error) {
	service, err := gosecret.NewService()
	if err != nil {
		return "", err
	}
	defer service.Close()
	service.Legacy = true

	slot := path.Join("/", s.Folder, s.Entry)
	items, _, err := service.SearchItems(map[string]string{
		"Path": slot,
	})
	if err != nil {
		return "", err
	}

	for _, item := range items {
		attributes, err := item.Attributes()
		if err != nil {
			continue
		}
		if value := attributes[s.Entry]; value != "" {
			return value, nil
		}
		if value := attributes["passphrase"]; value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("secret service holds no item for %s", slot)
}
