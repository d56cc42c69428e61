/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"

	"github.com/workprotocol/signaturesuite/pkg/doc/canonical"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/proof"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/suite/workdayed25519signature2020"
)

func issuerDoc(t *testing.T) UnsignedDoc {
	t.Helper()

	doc, err := NewUnsignedDoc(issuerPubKey, WithController("fooIssuer"),
		WithServices(ServiceDef{ID: "schemaID", Type: "schema", ServiceEndpoint: "schemaID"}))
	require.NoError(t, err)

	return *doc
}

func TestSignDocument(t *testing.T) {
	unsigned := issuerDoc(t)
	keyRef := KeyRef(issuerDID, InitialKey)
	created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	signed, err := SignDocument(unsigned, issuerPrivKey, keyRef,
		WithNonceSource(func() string { return "0948bb75-60c2-4a92-ad50-01ccee169ae0" }),
		WithCreated(created))
	require.NoError(t, err)

	require.Equal(t, unsigned, signed.UnsignedDoc)
	require.Equal(t, workdayed25519signature2020.SignatureType, signed.Proof.Type)
	require.Equal(t, keyRef, signed.Proof.Creator)
	require.Equal(t, "0948bb75-60c2-4a92-ad50-01ccee169ae0", signed.Proof.Nonce)
	require.Equal(t, "2020-01-02T03:04:05Z", signed.Proof.Created)

	docBytes, err := canonical.Marshal(&unsigned)
	require.NoError(t, err)

	ok, err := proof.VerifyEd25519Proof(issuerPubKey, &signed.Proof, docBytes)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyDocument(signed, issuerPubKey)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyDocumentWithEmbeddedKey(signed)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, CheckIdentity(signed, issuerPubKey))
}

func TestSignDocumentDefaults(t *testing.T) {
	unsigned := issuerDoc(t)
	unsigned.ID = ""

	first, err := SignDocument(unsigned, issuerPrivKey, "")
	require.NoError(t, err)
	require.Equal(t, issuerDID, first.ID)
	require.Equal(t, issuerDID+"#key-1", first.Proof.Creator)

	_, err = uuid.Parse(first.Proof.Nonce)
	require.NoError(t, err)

	second, err := SignDocument(unsigned, issuerPrivKey, "")
	require.NoError(t, err)
	require.NotEqual(t, first.Proof.Nonce, second.Proof.Nonce)
	require.NotEqual(t, first.Proof.SignatureValue, second.Proof.SignatureValue)

	t.Run("bad private key", func(t *testing.T) {
		_, err := SignDocument(unsigned, issuerPrivKey[:32], "")
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})
}

func TestVerifyDocument(t *testing.T) {
	signed, err := SignDocument(issuerDoc(t), issuerPrivKey, KeyRef(issuerDID, InitialKey))
	require.NoError(t, err)

	t.Run("tampered service", func(t *testing.T) {
		tampered := *signed
		tampered.Service = []ServiceDef{{ID: "schemaID", Type: "schema", ServiceEndpoint: "evil"}}

		ok, err := VerifyDocument(&tampered, issuerPubKey)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("tampered nonce", func(t *testing.T) {
		tampered := *signed
		tampered.Proof.Nonce = "other"

		ok, err := VerifyDocument(&tampered, issuerPubKey)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("other key", func(t *testing.T) {
		otherPubKey, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		ok, err := VerifyDocument(signed, otherPubKey)
		require.NoError(t, err)
		require.False(t, ok)

		require.ErrorIs(t, CheckIdentity(signed, otherPubKey), ErrIdentityMismatch)
	})

	t.Run("unknown proof type", func(t *testing.T) {
		other := *signed
		other.Proof.Type = "Ed25519Signature2018"

		ok, err := VerifyDocument(&other, issuerPubKey)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("malformed signature", func(t *testing.T) {
		other := *signed
		other.Proof.SignatureValue = "0OIl"

		_, err := VerifyDocument(&other, issuerPubKey)
		require.ErrorIs(t, err, api.ErrDecoding)
	})

	t.Run("embedded key not found", func(t *testing.T) {
		other := *signed
		other.Proof.Creator = issuerDID + "#key-9"

		_, err := VerifyDocumentWithEmbeddedKey(&other)
		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("nil document", func(t *testing.T) {
		_, err := VerifyDocument(nil, issuerPubKey)
		require.Error(t, err)

		_, err = VerifyDocumentWithEmbeddedKey(nil)
		require.Error(t, err)
	})

	t.Run("public key not on the curve", func(t *testing.T) {
		ok, err := VerifyDocument(signed, offCurveKey())
		require.ErrorIs(t, err, api.ErrInvalidKey)
		require.False(t, ok)
	})

	t.Run("short identity key", func(t *testing.T) {
		require.ErrorIs(t, CheckIdentity(signed, issuerPubKey[:8]), ErrInvalidKeyLength)
	})
}

func TestVerifyRawDocument(t *testing.T) {
	signed, err := SignDocument(issuerDoc(t), issuerPrivKey, KeyRef(issuerDID, InitialKey))
	require.NoError(t, err)

	raw, err := json.Marshal(signed)
	require.NoError(t, err)

	ok, err := VerifyRawDocument(raw, issuerPubKey)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("reordered and indented", func(t *testing.T) {
		var generic map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &generic))

		indented, err := json.MarshalIndent(generic, "", "  ")
		require.NoError(t, err)

		ok, err := VerifyRawDocument(indented, issuerPubKey)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("unknown member is covered", func(t *testing.T) {
		extended, err := sjson.SetBytes(raw, "extra", "value")
		require.NoError(t, err)

		ok, err := VerifyRawDocument(extended, issuerPubKey)
		require.NoError(t, err)
		require.False(t, ok)

		parsed, err := ParseDocument(extended)
		require.NoError(t, err)

		ok, err = VerifyDocument(parsed, issuerPubKey)
		require.NoError(t, err)
		require.True(t, ok, "typed verification only covers known members")
	})

	t.Run("tampered member", func(t *testing.T) {
		tampered, err := sjson.SetBytes(raw, "service.0.serviceEndpoint", "evil")
		require.NoError(t, err)

		ok, err := VerifyRawDocument(tampered, issuerPubKey)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("missing proof", func(t *testing.T) {
		stripped, err := sjson.DeleteBytes(raw, "proof")
		require.NoError(t, err)

		_, err = VerifyRawDocument(stripped, issuerPubKey)
		require.ErrorIs(t, err, ErrMissingProof)
	})

	t.Run("proof of wrong kind", func(t *testing.T) {
		_, err := VerifyRawDocument([]byte(`{"id":"x","proof":{"nonce":1}}`), issuerPubKey)
		require.ErrorIs(t, err, api.ErrDecoding)
	})

	t.Run("missing signature value", func(t *testing.T) {
		unsigned, err := sjson.DeleteBytes(raw, "proof.signatureValue")
		require.NoError(t, err)

		_, err = VerifyRawDocument(unsigned, issuerPubKey)
		require.ErrorIs(t, err, proof.ErrSignatureNotDefined)
	})

	t.Run("malformed created time", func(t *testing.T) {
		badCreated, err := sjson.SetBytes(raw, "proof.created", "yesterday")
		require.NoError(t, err)

		_, err = VerifyRawDocument(badCreated, issuerPubKey)
		require.ErrorIs(t, err, api.ErrDecoding)
	})

	t.Run("public key not on the curve", func(t *testing.T) {
		_, err := VerifyRawDocument(raw, offCurveKey())
		require.ErrorIs(t, err, api.ErrInvalidKey)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := VerifyRawDocument([]byte(`{"id":`), issuerPubKey)
		require.ErrorIs(t, err, canonical.ErrInvalidJSON)
	})
}
