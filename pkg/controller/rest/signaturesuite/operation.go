/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signaturesuite

import (
	"net/http"

	"github.com/workprotocol/signaturesuite/pkg/controller/command/signaturesuite"
	"github.com/workprotocol/signaturesuite/pkg/controller/internal/cmdutil"
	"github.com/workprotocol/signaturesuite/pkg/controller/rest"
)

// constants for the signature suite operations.
const (
	OperationID      = "/signaturesuite"
	CanonicalizePath = OperationID + "/canonicalize"
	GenerateDIDPath  = OperationID + "/did"
	CreateDIDDocPath = OperationID + "/diddoc"
	SignPath         = OperationID + "/sign"
	VerifyPath       = OperationID + "/verify"
)

// Operation contains REST operations provided by the signature suite API.
type Operation struct {
	handlers []rest.Handler
	command  *signaturesuite.Command
}

// New returns a new instance of the signature suite REST controller.
func New(opts ...signaturesuite.Option) *Operation {
	op := &Operation{command: signaturesuite.New(opts...)}
	op.registerHandlers()

	return op
}

func (o *Operation) registerHandlers() {
	o.handlers = []rest.Handler{
		cmdutil.NewHTTPHandler(CanonicalizePath, http.MethodPost, o.Canonicalize),
		cmdutil.NewHTTPHandler(GenerateDIDPath, http.MethodPost, o.GenerateDID),
		cmdutil.NewHTTPHandler(CreateDIDDocPath, http.MethodPost, o.CreateDIDDoc),
		cmdutil.NewHTTPHandler(SignPath, http.MethodPost, o.SignDocument),
		cmdutil.NewHTTPHandler(VerifyPath, http.MethodPost, o.VerifyDocument),
	}
}

// GetRESTHandlers gets all controller API handlers available for this service.
func (o *Operation) GetRESTHandlers() []rest.Handler {
	return o.handlers
}

// Canonicalize swagger:route POST /signaturesuite/canonicalize signaturesuite canonicalizeReq
//
// Returns the canonical form of a JSON object.
//
// Responses:
//
//	default: genericError
//	200: canonicalizeRes
func (o *Operation) Canonicalize(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.Canonicalize, rw, req.Body)
}

// GenerateDID swagger:route POST /signaturesuite/did signaturesuite generateDIDReq
//
// Derives the did:work identifier of a Base58 Ed25519 public key.
//
// Responses:
//
//	default: genericError
//	200: generateDIDRes
func (o *Operation) GenerateDID(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.GenerateDID, rw, req.Body)
}

// CreateDIDDoc swagger:route POST /signaturesuite/diddoc signaturesuite createDIDDocReq
//
// Builds an unsigned DID document for a Base58 Ed25519 public key.
//
// Responses:
//
//	default: genericError
//	200: didDocRes
func (o *Operation) CreateDIDDoc(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.CreateDIDDoc, rw, req.Body)
}

// SignDocument swagger:route POST /signaturesuite/sign signaturesuite signDocumentReq
//
// Signs an unsigned DID document with the server key.
//
// Responses:
//
//	default: genericError
//	200: signDocumentRes
func (o *Operation) SignDocument(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.SignDocument, rw, req.Body)
}

// VerifyDocument swagger:route POST /signaturesuite/verify signaturesuite verifyDocumentReq
//
// Verifies the proof of a signed DID document.
//
// Responses:
//
//	default: genericError
//	200: verifyDocumentRes
func (o *Operation) VerifyDocument(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.VerifyDocument, rw, req.Body)
}
