/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package proof creates and verifies detached Ed25519 proofs over canonical document bytes.
package proof

import (
	"crypto/ed25519"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/suite/workdayed25519signature2020"
)

// nonceSeparator sits between the document bytes and the nonce in the signed message.
const nonceSeparator = "."

// Proof is a signed proof of a given document.
type Proof struct {
	Created        string `json:"created"`
	Creator        string `json:"creator"`
	Nonce          string `json:"nonce"`
	SignatureValue string `json:"signatureValue"`
	Type           string `json:"type"`
}

// ErrSignatureNotDefined is returned by NewProof when the proof has no signature value.
var ErrSignatureNotDefined = errors.New("signature is not defined")

// SigningSuite signs proof messages.
type SigningSuite interface {
	// Sign will sign the message and return the raw signature
	Sign(msg []byte) ([]byte, error)
	// ProofType returns the type written into created proofs
	ProofType() string
}

// VerifyingSuite verifies proof messages.
type VerifyingSuite interface {
	// Verify will verify the raw signature of the message
	Verify(pubKey *api.PublicKey, msg, signature []byte) error
	// Accept reports whether the suite can evaluate proofs of the given type
	Accept(proofType string) bool
}

type options struct {
	created time.Time
}

// Opt configures proof creation.
type Opt func(opts *options)

// WithCreated sets the creation time of the proof. Defaults to the current time.
func WithCreated(t time.Time) Opt {
	return func(opts *options) {
		opts.created = t
	}
}

// CreateVerifyData returns the message covered by the signature: doc, a "." separator, then nonce.
func CreateVerifyData(doc []byte, nonce string) []byte {
	msg := make([]byte, 0, len(doc)+len(nonceSeparator)+len(nonce))
	msg = append(msg, doc...)
	msg = append(msg, nonceSeparator...)

	return append(msg, nonce...)
}

// CreateProof signs doc and nonce with the given suite and returns the proof.
func CreateProof(s SigningSuite, doc []byte, keyRef, nonce string, opts ...Opt) (*Proof, error) {
	o := &options{created: time.Now()}

	for _, opt := range opts {
		opt(o)
	}

	signature, err := s.Sign(CreateVerifyData(doc, nonce))
	if err != nil {
		if errors.Is(err, api.ErrInvalidKey) {
			return nil, errors.Wrap(err, "create proof")
		}

		return nil, errors.Wrapf(api.ErrSignature, "create proof: %v", err)
	}

	return &Proof{
		Type:           s.ProofType(),
		Created:        o.created.UTC().Format(time.RFC3339),
		Creator:        keyRef,
		SignatureValue: base58.Encode(signature),
		Nonce:          nonce,
	}, nil
}

// VerifyProof checks the proof over doc with the given suite and public key.
// A proof type the suite does not accept yields false with no error, as does a signature mismatch.
func VerifyProof(s VerifyingSuite, pubKey *api.PublicKey, p *Proof, doc []byte) (bool, error) {
	if p == nil {
		return false, errors.New("verify proof: proof is not defined")
	}

	if !s.Accept(p.Type) {
		return false, nil
	}

	signature, err := base58.Decode(p.SignatureValue)
	if err != nil {
		return false, errors.Wrapf(api.ErrDecoding, "signatureValue: %v", err)
	}

	err = s.Verify(pubKey, CreateVerifyData(doc, p.Nonce), signature)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, api.ErrSignatureMismatch):
		return false, nil
	case errors.Is(err, api.ErrInvalidKey):
		return false, errors.Wrap(err, "verify proof")
	default:
		return false, errors.Wrapf(api.ErrSignature, "verify proof: %v", err)
	}
}

// CreateEd25519Proof signs doc and nonce with privKey using the Workday ed25519 suite.
func CreateEd25519Proof(doc []byte, keyRef string, privKey ed25519.PrivateKey, nonce string,
	opts ...Opt) (*Proof, error) {
	if len(privKey) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(api.ErrInvalidKey, "create proof: bad private key length %d", len(privKey))
	}

	return CreateProof(workdayed25519signature2020.NewEd25519(privKey), doc, keyRef, nonce, opts...)
}

// VerifyEd25519Proof verifies a Workday ed25519 proof over doc with pubKey.
func VerifyEd25519Proof(pubKey ed25519.PublicKey, p *Proof, doc []byte) (bool, error) {
	return VerifyProof(workdayed25519signature2020.NewEd25519(nil),
		&api.PublicKey{Type: workdayed25519signature2020.VerificationKeyType, Value: pubKey}, p, doc)
}

// NewProof decodes a proof from its generic JSON object form.
func NewProof(emap map[string]interface{}) (*Proof, error) {
	p := &Proof{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  p,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new proof decoder")
	}

	if err := decoder.Decode(emap); err != nil {
		return nil, errors.Wrapf(api.ErrDecoding, "proof: %v", err)
	}

	if p.SignatureValue == "" {
		return nil, ErrSignatureNotDefined
	}

	if p.Created != "" {
		if _, err := p.CreatedTime(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// CreatedTime parses the creation time of the proof.
func (p *Proof) CreatedTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, p.Created)
	if err != nil {
		return time.Time{}, errors.Wrapf(api.ErrDecoding, "created: %v", err)
	}

	return t, nil
}
