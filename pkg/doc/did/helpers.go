/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package did

import "strings"

// LookupService returns the first service of the given DID document matching the given service type.
func LookupService(doc *UnsignedDoc, serviceType string) (*ServiceDef, bool) {
	for i := range doc.Service {
		if doc.Service[i].Type == serviceType {
			return &doc.Service[i], true
		}
	}

	return nil, false
}

// LookupPublicKey returns the key entry with the given ID.
// Relative entries such as "#key-1" are matched against the document ID.
func LookupPublicKey(id string, doc *UnsignedDoc) (*KeyDef, bool) {
	for i := range doc.PublicKey {
		keyID := doc.PublicKey[i].ID
		if strings.HasPrefix(keyID, "#") {
			keyID = doc.ID + keyID
		}

		if keyID == id {
			return &doc.PublicKey[i], true
		}
	}

	return nil, false
}
