/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package did models did:work identities: unsigned DID documents, their signed form and the
// derivation of the DID from an Ed25519 public key.
package did

import (
	"crypto/ed25519"
	"encoding/json"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/proof"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/suite/workdayed25519signature2020"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/verifier"
)

const (
	// DIDMethodPrefix is the prefix of every did:work identifier.
	DIDMethodPrefix = "did:work:"
	// InitialKey is the key reference fragment assigned to the first key in a DID document.
	InitialKey = "key-1"

	// didKeyBytes is the number of leading public key bytes encoded into the DID.
	didKeyBytes = 16
	jsonldProof = "proof"
)

var (
	// ErrInvalidKeyLength is returned when fewer than 16 public key bytes are given to GenerateDID.
	ErrInvalidKeyLength = errors.New("public key is too short to derive a DID")

	// ErrMissingProof is returned when a signed document carries no proof.
	ErrMissingProof = errors.New("document has no proof")

	// ErrKeyNotFound is returned when key is not found.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIdentityMismatch is returned when the document ID is not the DID derived from the signing key.
	ErrIdentityMismatch = errors.New("document id does not match the signing key")
)

// UnsignedDoc is a DID document before signing.
type UnsignedDoc struct {
	ID             string       `json:"id"`
	PublicKey      []KeyDef     `json:"publicKey"`
	Authentication []string     `json:"authentication"`
	Service        []ServiceDef `json:"service"`
}

// KeyDef represents a DID public key.
type KeyDef struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Controller      string `json:"controller,omitempty"`
	PublicKeyBase58 string `json:"publicKeyBase58"`
}

// ServiceDef represents a DID service endpoint.
type ServiceDef struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// Doc is a signed DID document: the unsigned document plus its proof.
// It serializes to a single JSON object with the document fields and a "proof" member.
type Doc struct {
	UnsignedDoc
	Proof proof.Proof `json:"proof"`
}

// GenerateDID derives the did:work identifier from the leading 16 bytes of pubKey.
func GenerateDID(pubKey []byte) (string, error) {
	if len(pubKey) < didKeyBytes {
		return "", errors.Wrapf(ErrInvalidKeyLength, "got %d bytes, need %d", len(pubKey), didKeyBytes)
	}

	return DIDMethodPrefix + base58.Encode(pubKey[:didKeyBytes]), nil
}

// KeyRef returns the fully qualified key reference "<did>#<fragment>".
func KeyRef(did, fragment string) string {
	return did + "#" + fragment
}

type docOpts struct {
	controller     string
	authentication []string
	services       []ServiceDef
}

// DocOpt configures NewUnsignedDoc.
type DocOpt func(opts *docOpts)

// WithController sets the controller of the initial key.
func WithController(controller string) DocOpt {
	return func(opts *docOpts) {
		opts.controller = controller
	}
}

// WithAuthentication lists the key references usable for authentication.
func WithAuthentication(keyRefs ...string) DocOpt {
	return func(opts *docOpts) {
		opts.authentication = append(opts.authentication, keyRefs...)
	}
}

// WithServices adds service endpoints to the document.
func WithServices(services ...ServiceDef) DocOpt {
	return func(opts *docOpts) {
		opts.services = append(opts.services, services...)
	}
}

// NewUnsignedDoc builds a DID document for pubKey with the derived DID and a single key-1 entry.
func NewUnsignedDoc(pubKey ed25519.PublicKey, opts ...DocOpt) (*UnsignedDoc, error) {
	if err := verifier.ValidateEd25519PublicKey(pubKey); err != nil {
		return nil, err
	}

	o := &docOpts{}

	for _, opt := range opts {
		opt(o)
	}

	did, err := GenerateDID(pubKey)
	if err != nil {
		return nil, err
	}

	return &UnsignedDoc{
		ID: did,
		PublicKey: []KeyDef{{
			ID:              KeyRef(did, InitialKey),
			Type:            workdayed25519signature2020.VerificationKeyType,
			Controller:      o.controller,
			PublicKeyBase58: base58.Encode(pubKey),
		}},
		Authentication: o.authentication,
		Service:        o.services,
	}, nil
}

// ParseDocument parses a signed DID document.
func ParseDocument(data []byte) (*Doc, error) {
	doc := &Doc{}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrapf(api.ErrDecoding, "parse DID document: %v", err)
	}

	if p := gjson.GetBytes(data, jsonldProof); !p.Exists() || p.Type == gjson.Null {
		return nil, ErrMissingProof
	}

	return doc, nil
}

// PublicKeyByRef returns the key entry whose ID is keyRef, see LookupPublicKey.
func (d *Doc) PublicKeyByRef(keyRef string) (*KeyDef, error) {
	key, ok := LookupPublicKey(keyRef, &d.UnsignedDoc)
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "key %q", keyRef)
	}

	return key, nil
}

// DecodePublicKey returns the Ed25519 public key held by k.
func DecodePublicKey(k KeyDef) (ed25519.PublicKey, error) {
	if k.Type != workdayed25519signature2020.VerificationKeyType {
		return nil, errors.Wrapf(api.ErrInvalidKey, "unsupported key type %q", k.Type)
	}

	value, err := base58.Decode(k.PublicKeyBase58)
	if err != nil {
		return nil, errors.Wrapf(api.ErrDecoding, "publicKeyBase58: %v", err)
	}

	if err := verifier.ValidateEd25519PublicKey(value); err != nil {
		return nil, err
	}

	return value, nil
}
