/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/suite/workdayed25519signature2020"
)

const (
	issuerDID       = "did:work:6sYe1y3zXhmyrBkgHgAgaq"
	issuerPubKeyB58 = "4CcKDtU1JNGi8U4D8Rv9CHzfmF7xzaxEAPFA54eQjRHF"
)

//nolint:gochecknoglobals
var (
	issuerPrivKey = ed25519.NewKeyFromSeed([]byte("12345678901234567890123456789012"))
	issuerPubKey  = issuerPrivKey.Public().(ed25519.PublicKey)
)

// offCurveKey has the right length but encodes y = 2, which is not a point on edwards25519.
func offCurveKey() ed25519.PublicKey {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	key[0] = 2

	return key
}

func TestGenerateDID(t *testing.T) {
	did, err := GenerateDID(issuerPubKey)
	require.NoError(t, err)
	require.Equal(t, issuerDID, did)

	again, err := GenerateDID(issuerPubKey)
	require.NoError(t, err)
	require.Equal(t, did, again)

	t.Run("only the first 16 bytes count", func(t *testing.T) {
		key := make([]byte, len(issuerPubKey))
		copy(key, issuerPubKey)
		key[31] ^= 0xff

		other, err := GenerateDID(key)
		require.NoError(t, err)
		require.Equal(t, did, other)

		key[15] ^= 0xff

		other, err = GenerateDID(key)
		require.NoError(t, err)
		require.NotEqual(t, did, other)
	})

	t.Run("exactly 16 bytes", func(t *testing.T) {
		other, err := GenerateDID(issuerPubKey[:16])
		require.NoError(t, err)
		require.Equal(t, did, other)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := GenerateDID(issuerPubKey[:15])
		require.ErrorIs(t, err, ErrInvalidKeyLength)
	})
}

func TestNewUnsignedDoc(t *testing.T) {
	service := ServiceDef{ID: "schemaID", Type: "schema", ServiceEndpoint: "https://example.com/schema"}

	doc, err := NewUnsignedDoc(issuerPubKey,
		WithController("fooIssuer"),
		WithServices(service),
		WithAuthentication(KeyRef(issuerDID, InitialKey)))
	require.NoError(t, err)

	require.Equal(t, issuerDID, doc.ID)
	require.Equal(t, []KeyDef{{
		ID:              issuerDID + "#key-1",
		Type:            workdayed25519signature2020.VerificationKeyType,
		Controller:      "fooIssuer",
		PublicKeyBase58: issuerPubKeyB58,
	}}, doc.PublicKey)
	require.Equal(t, []string{issuerDID + "#key-1"}, doc.Authentication)
	require.Equal(t, []ServiceDef{service}, doc.Service)

	found, ok := LookupService(doc, "schema")
	require.True(t, ok)
	require.Equal(t, "schemaID", found.ID)

	_, ok = LookupService(doc, "other")
	require.False(t, ok)

	key, ok := LookupPublicKey(issuerDID+"#key-1", doc)
	require.True(t, ok)
	require.Equal(t, issuerPubKeyB58, key.PublicKeyBase58)

	_, ok = LookupPublicKey("#key-2", doc)
	require.False(t, ok)

	t.Run("bad public key", func(t *testing.T) {
		_, err := NewUnsignedDoc(issuerPubKey[:16])
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})

	t.Run("public key not on the curve", func(t *testing.T) {
		_, err := NewUnsignedDoc(offCurveKey())
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})
}

func TestDocJSON(t *testing.T) {
	doc, err := NewUnsignedDoc(issuerPubKey)
	require.NoError(t, err)

	signed, err := SignDocument(*doc, issuerPrivKey, "", WithNonceSource(func() string { return "nonce-1" }))
	require.NoError(t, err)

	raw, err := json.Marshal(signed)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Len(t, fields, 5)

	for _, name := range []string{"id", "publicKey", "authentication", "service", "proof"} {
		require.Contains(t, fields, name)
	}

	var proofFields map[string]string
	require.NoError(t, json.Unmarshal(fields["proof"], &proofFields))
	require.Len(t, proofFields, 5)

	for _, name := range []string{"created", "creator", "nonce", "signatureValue", "type"} {
		require.Contains(t, proofFields, name)
	}

	parsed, err := ParseDocument(raw)
	require.NoError(t, err)
	require.Equal(t, signed, parsed)

	t.Run("missing proof", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{"id":"did:work:abc"}`))
		require.ErrorIs(t, err, ErrMissingProof)

		_, err = ParseDocument([]byte(`{"id":"did:work:abc","proof":null}`))
		require.ErrorIs(t, err, ErrMissingProof)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{"id":`))
		require.ErrorIs(t, err, api.ErrDecoding)
	})
}

func TestPublicKeyByRef(t *testing.T) {
	doc := &Doc{UnsignedDoc: UnsignedDoc{
		ID: issuerDID,
		PublicKey: []KeyDef{
			{ID: issuerDID + "#key-1", Type: workdayed25519signature2020.VerificationKeyType},
			{ID: "#key-2", Type: workdayed25519signature2020.VerificationKeyType},
		},
	}}

	key, err := doc.PublicKeyByRef(issuerDID + "#key-1")
	require.NoError(t, err)
	require.Equal(t, issuerDID+"#key-1", key.ID)

	key, err = doc.PublicKeyByRef(issuerDID + "#key-2")
	require.NoError(t, err)
	require.Equal(t, "#key-2", key.ID)

	_, err = doc.PublicKeyByRef(issuerDID + "#key-3")
	require.ErrorIs(t, err, ErrKeyNotFound)

	key, ok := LookupPublicKey(issuerDID+"#key-2", &doc.UnsignedDoc)
	require.True(t, ok)
	require.Equal(t, "#key-2", key.ID)
}

func TestDecodePublicKey(t *testing.T) {
	key := KeyDef{Type: workdayed25519signature2020.VerificationKeyType, PublicKeyBase58: issuerPubKeyB58}

	pubKey, err := DecodePublicKey(key)
	require.NoError(t, err)
	require.Equal(t, issuerPubKey, pubKey)

	t.Run("unsupported type", func(t *testing.T) {
		other := key
		other.Type = "Ed25519VerificationKey2018"

		_, err := DecodePublicKey(other)
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})

	t.Run("malformed base58", func(t *testing.T) {
		other := key
		other.PublicKeyBase58 = "0OIl"

		_, err := DecodePublicKey(other)
		require.ErrorIs(t, err, api.ErrDecoding)
	})

	t.Run("short key", func(t *testing.T) {
		other := key
		other.PublicKeyBase58 = base58.Encode(issuerPubKey[:20])

		_, err := DecodePublicKey(other)
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})

	t.Run("key not on the curve", func(t *testing.T) {
		other := key
		other.PublicKeyBase58 = base58.Encode(offCurveKey())

		_, err := DecodePublicKey(other)
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})
}
