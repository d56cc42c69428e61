/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signaturesuite

import (
	"encoding/json"

	"github.com/workprotocol/signaturesuite/pkg/doc/did"
)

// CanonicalizeRequest is model for canonicalizing a JSON object.
type CanonicalizeRequest struct {
	Document json.RawMessage `json:"document"`
}

// CanonicalizeResponse is model for the canonical form of a JSON object.
type CanonicalizeResponse struct {
	Canonical string `json:"canonical"`
}

// GenerateDIDRequest is model for deriving a DID from a Base58 Ed25519 public key.
type GenerateDIDRequest struct {
	PublicKey string `json:"publicKey"`
}

// GenerateDIDResponse is model for a derived DID and its initial key reference.
type GenerateDIDResponse struct {
	DID    string `json:"did"`
	KeyRef string `json:"keyRef"`
}

// CreateDIDDocRequest is model for building an unsigned DID document for a Base58 Ed25519 public key.
type CreateDIDDocRequest struct {
	PublicKey      string           `json:"publicKey"`
	Controller     string           `json:"controller,omitempty"`
	Authentication []string         `json:"authentication,omitempty"`
	Services       []did.ServiceDef `json:"services,omitempty"`
}

// DIDDocResponse is model for an unsigned DID document.
type DIDDocResponse struct {
	Document *did.UnsignedDoc `json:"document"`
}

// SignDocumentRequest is model for signing an unsigned DID document with the configured key.
type SignDocumentRequest struct {
	Document did.UnsignedDoc `json:"document"`
	KeyRef   string          `json:"keyRef,omitempty"`
}

// SignDocumentResponse is model for a signed DID document.
type SignDocumentResponse struct {
	Document *did.Doc `json:"document"`
}

// VerifyDocumentRequest is model for verifying a signed DID document.
// Without a public key the key referenced by the proof creator inside the document is used.
type VerifyDocumentRequest struct {
	Document      json.RawMessage `json:"document"`
	PublicKey     string          `json:"publicKey,omitempty"`
	CheckIdentity bool            `json:"checkIdentity,omitempty"`
}

// VerifyDocumentResponse is model for a verification result.
type VerifyDocumentResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}
