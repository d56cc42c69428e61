/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signaturesuite

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mr-tron/base58"

	"github.com/workprotocol/signaturesuite/pkg/common/log"
	"github.com/workprotocol/signaturesuite/pkg/controller/command"
	"github.com/workprotocol/signaturesuite/pkg/controller/internal/cmdutil"
	"github.com/workprotocol/signaturesuite/pkg/doc/canonical"
	"github.com/workprotocol/signaturesuite/pkg/doc/did"
	"github.com/workprotocol/signaturesuite/pkg/internal/logutil"
)

var logger = log.New("signaturesuite/command")

// Error codes.
const (
	// InvalidRequestErrorCode is typically a code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.SignatureSuite)

	// CanonicalizeErrorCode for canonicalize error.
	CanonicalizeErrorCode

	// GenerateDIDErrorCode for DID derivation error.
	GenerateDIDErrorCode

	// CreateDIDDocErrorCode for DID document creation error.
	CreateDIDDocErrorCode

	// SignDocumentErrorCode for sign error.
	SignDocumentErrorCode

	// VerifyDocumentErrorCode for verify error.
	VerifyDocumentErrorCode
)

// constants for the signature suite controller's methods.
const (
	// command name.
	CommandName = "signaturesuite"

	// command methods.
	CanonicalizeCommandMethod   = "Canonicalize"
	GenerateDIDCommandMethod    = "GenerateDID"
	CreateDIDDocCommandMethod   = "CreateDIDDoc"
	SignDocumentCommandMethod   = "SignDocument"
	VerifyDocumentCommandMethod = "VerifyDocument"

	// error messages.
	errEmptyDocument  = "document is mandatory"
	errEmptyPublicKey = "publicKey is mandatory"
	errNoSigningKey   = "signing key is not configured"

	// log constants.
	didID    = "did"
	keyRefID = "keyRef"
)

// Option configures the command.
type Option func(c *Command)

// WithSigningKey sets the Ed25519 key SignDocument signs with and its default key reference.
func WithSigningKey(privKey ed25519.PrivateKey, keyRef string) Option {
	return func(c *Command) {
		c.privKey = privKey
		c.keyRef = keyRef
	}
}

// WithSignOptions passes options through to did.SignDocument.
func WithSignOptions(opts ...did.SignOpt) Option {
	return func(c *Command) {
		c.signOpts = append(c.signOpts, opts...)
	}
}

// WithClock sets the clock read for the creation time of every signed document.
func WithClock(clock func() time.Time) Option {
	return func(c *Command) {
		c.clock = clock
	}
}

// Command contains command operations provided by the signature suite controller.
type Command struct {
	privKey  ed25519.PrivateKey
	keyRef   string
	signOpts []did.SignOpt
	clock    func() time.Time
}

// New returns new signature suite controller command instance.
func New(opts ...Option) *Command {
	c := &Command{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetHandlers returns list of all commands supported by this controller command.
func (c *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, CanonicalizeCommandMethod, c.Canonicalize),
		cmdutil.NewCommandHandler(CommandName, GenerateDIDCommandMethod, c.GenerateDID),
		cmdutil.NewCommandHandler(CommandName, CreateDIDDocCommandMethod, c.CreateDIDDoc),
		cmdutil.NewCommandHandler(CommandName, SignDocumentCommandMethod, c.SignDocument),
		cmdutil.NewCommandHandler(CommandName, VerifyDocumentCommandMethod, c.VerifyDocument),
	}
}

// Canonicalize returns the canonical form of a JSON object.
func (c *Command) Canonicalize(rw io.Writer, req io.Reader) command.Error {
	var request CanonicalizeRequest

	if err := json.NewDecoder(req).Decode(&request); err != nil {
		logutil.LogInfo(logger, CommandName, CanonicalizeCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	if len(request.Document) == 0 {
		logutil.LogDebug(logger, CommandName, CanonicalizeCommandMethod, errEmptyDocument)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyDocument))
	}

	out, err := canonical.CanonicalizeBytes(request.Document)
	if err != nil {
		logutil.LogError(logger, CommandName, CanonicalizeCommandMethod, err.Error())

		return command.NewValidationError(CanonicalizeErrorCode, fmt.Errorf("canonicalize : %w", err))
	}

	command.WriteNillableResponse(rw, &CanonicalizeResponse{Canonical: string(out)}, logger)

	logutil.LogDebug(logger, CommandName, CanonicalizeCommandMethod, "success")

	return nil
}

// GenerateDID derives the did:work identifier of a public key.
func (c *Command) GenerateDID(rw io.Writer, req io.Reader) command.Error {
	var request GenerateDIDRequest

	if err := json.NewDecoder(req).Decode(&request); err != nil {
		logutil.LogInfo(logger, CommandName, GenerateDIDCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	pubKey, cmdErr := decodePublicKey(request.PublicKey, GenerateDIDCommandMethod, GenerateDIDErrorCode)
	if cmdErr != nil {
		return cmdErr
	}

	id, err := did.GenerateDID(pubKey)
	if err != nil {
		logutil.LogError(logger, CommandName, GenerateDIDCommandMethod, err.Error())

		return command.NewValidationError(GenerateDIDErrorCode, fmt.Errorf("generate did : %w", err))
	}

	command.WriteNillableResponse(rw, &GenerateDIDResponse{DID: id, KeyRef: did.KeyRef(id, did.InitialKey)}, logger)

	logutil.LogDebug(logger, CommandName, GenerateDIDCommandMethod, "success",
		logutil.CreateKeyValueString(didID, id))

	return nil
}

// CreateDIDDoc builds an unsigned DID document for a public key.
func (c *Command) CreateDIDDoc(rw io.Writer, req io.Reader) command.Error {
	var request CreateDIDDocRequest

	if err := json.NewDecoder(req).Decode(&request); err != nil {
		logutil.LogInfo(logger, CommandName, CreateDIDDocCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	pubKey, cmdErr := decodePublicKey(request.PublicKey, CreateDIDDocCommandMethod, CreateDIDDocErrorCode)
	if cmdErr != nil {
		return cmdErr
	}

	opts := []did.DocOpt{did.WithController(request.Controller), did.WithServices(request.Services...)}
	if len(request.Authentication) > 0 {
		opts = append(opts, did.WithAuthentication(request.Authentication...))
	}

	doc, err := did.NewUnsignedDoc(pubKey, opts...)
	if err != nil {
		logutil.LogError(logger, CommandName, CreateDIDDocCommandMethod, err.Error())

		return command.NewValidationError(CreateDIDDocErrorCode, fmt.Errorf("create did doc : %w", err))
	}

	command.WriteNillableResponse(rw, &DIDDocResponse{Document: doc}, logger)

	logutil.LogDebug(logger, CommandName, CreateDIDDocCommandMethod, "success",
		logutil.CreateKeyValueString(didID, doc.ID))

	return nil
}

// SignDocument signs an unsigned DID document with the configured key.
func (c *Command) SignDocument(rw io.Writer, req io.Reader) command.Error {
	var request SignDocumentRequest

	if err := json.NewDecoder(req).Decode(&request); err != nil {
		logutil.LogInfo(logger, CommandName, SignDocumentCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	if c.privKey == nil {
		logutil.LogError(logger, CommandName, SignDocumentCommandMethod, errNoSigningKey)

		return command.NewExecuteError(SignDocumentErrorCode, errors.New(errNoSigningKey))
	}

	keyRef := request.KeyRef
	if keyRef == "" {
		keyRef = c.keyRef
	}

	signOpts := append([]did.SignOpt{}, c.signOpts...)
	if c.clock != nil {
		signOpts = append(signOpts, did.WithCreated(c.clock()))
	}

	signed, err := did.SignDocument(request.Document, c.privKey, keyRef, signOpts...)
	if err != nil {
		logutil.LogError(logger, CommandName, SignDocumentCommandMethod, err.Error(),
			logutil.CreateKeyValueString(keyRefID, keyRef))

		return command.NewExecuteError(SignDocumentErrorCode, fmt.Errorf("sign did doc : %w", err))
	}

	command.WriteNillableResponse(rw, &SignDocumentResponse{Document: signed}, logger)

	logutil.LogDebug(logger, CommandName, SignDocumentCommandMethod, "success",
		logutil.CreateKeyValueString(didID, signed.ID))

	return nil
}

// VerifyDocument verifies the proof of a signed DID document.
func (c *Command) VerifyDocument(rw io.Writer, req io.Reader) command.Error {
	var request VerifyDocumentRequest

	if err := json.NewDecoder(req).Decode(&request); err != nil {
		logutil.LogInfo(logger, CommandName, VerifyDocumentCommandMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	if len(request.Document) == 0 {
		logutil.LogDebug(logger, CommandName, VerifyDocumentCommandMethod, errEmptyDocument)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyDocument))
	}

	doc, err := did.ParseDocument(request.Document)
	if err != nil {
		logutil.LogError(logger, CommandName, VerifyDocumentCommandMethod, err.Error())

		return command.NewValidationError(VerifyDocumentErrorCode, fmt.Errorf("parse did doc : %w", err))
	}

	pubKey, err := verificationKey(doc, request.PublicKey)
	if err != nil {
		logutil.LogError(logger, CommandName, VerifyDocumentCommandMethod, err.Error(),
			logutil.CreateKeyValueString(didID, doc.ID))

		return command.NewValidationError(VerifyDocumentErrorCode, fmt.Errorf("verification key : %w", err))
	}

	response := &VerifyDocumentResponse{}

	response.Verified, err = did.VerifyRawDocument(request.Document, pubKey)
	if err != nil {
		logutil.LogError(logger, CommandName, VerifyDocumentCommandMethod, err.Error(),
			logutil.CreateKeyValueString(didID, doc.ID))

		return command.NewValidationError(VerifyDocumentErrorCode, fmt.Errorf("verify did doc : %w", err))
	}

	if !response.Verified {
		response.Reason = "proof does not verify"
	} else if request.CheckIdentity {
		if err := did.CheckIdentity(doc, pubKey); err != nil {
			response.Verified = false
			response.Reason = err.Error()
		}
	}

	command.WriteNillableResponse(rw, response, logger)

	logutil.LogDebug(logger, CommandName, VerifyDocumentCommandMethod, "success",
		logutil.CreateKeyValueString(didID, doc.ID),
		logutil.CreateKeyValueString("verified", fmt.Sprint(response.Verified)))

	return nil
}

func decodePublicKey(value, method string, code command.Code) ([]byte, command.Error) {
	if value == "" {
		logutil.LogDebug(logger, CommandName, method, errEmptyPublicKey)

		return nil, command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyPublicKey))
	}

	pubKey, err := base58.Decode(value)
	if err != nil {
		logutil.LogInfo(logger, CommandName, method, err.Error())

		return nil, command.NewValidationError(code, fmt.Errorf("decode publicKey : %w", err))
	}

	return pubKey, nil
}

func verificationKey(doc *did.Doc, publicKey string) (ed25519.PublicKey, error) {
	if publicKey != "" {
		pubKey, err := base58.Decode(publicKey)
		if err != nil {
			return nil, fmt.Errorf("decode publicKey : %w", err)
		}

		return pubKey, nil
	}

	key, err := doc.PublicKeyByRef(doc.Proof.Creator)
	if err != nil {
		return nil, err
	}

	return did.DecodePublicKey(*key)
}
