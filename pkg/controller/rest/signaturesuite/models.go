/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signaturesuite

import (
	"github.com/workprotocol/signaturesuite/pkg/controller/command/signaturesuite"
)

// canonicalizeReq model
//
// swagger:parameters canonicalizeReq
type canonicalizeReq struct { //nolint: unused,deadcode
	// in: body
	Params signaturesuite.CanonicalizeRequest
}

// canonicalizeRes model
//
// swagger:response canonicalizeRes
type canonicalizeRes struct { //nolint: unused,deadcode
	// in: body
	signaturesuite.CanonicalizeResponse
}

// generateDIDReq model
//
// swagger:parameters generateDIDReq
type generateDIDReq struct { //nolint: unused,deadcode
	// in: body
	Params signaturesuite.GenerateDIDRequest
}

// generateDIDRes model
//
// swagger:response generateDIDRes
type generateDIDRes struct { //nolint: unused,deadcode
	// in: body
	signaturesuite.GenerateDIDResponse
}

// createDIDDocReq model
//
// swagger:parameters createDIDDocReq
type createDIDDocReq struct { //nolint: unused,deadcode
	// in: body
	Params signaturesuite.CreateDIDDocRequest
}

// didDocRes model
//
// swagger:response didDocRes
type didDocRes struct { //nolint: unused,deadcode
	// in: body
	signaturesuite.DIDDocResponse
}

// signDocumentReq model
//
// swagger:parameters signDocumentReq
type signDocumentReq struct { //nolint: unused,deadcode
	// in: body
	Params signaturesuite.SignDocumentRequest
}

// signDocumentRes model
//
// swagger:response signDocumentRes
type signDocumentRes struct { //nolint: unused,deadcode
	// in: body
	signaturesuite.SignDocumentResponse
}

// verifyDocumentReq model
//
// swagger:parameters verifyDocumentReq
type verifyDocumentReq struct { //nolint: unused,deadcode
	// in: body
	Params signaturesuite.VerifyDocumentRequest
}

// verifyDocumentRes model
//
// swagger:response verifyDocumentRes
type verifyDocumentRes struct { //nolint: unused,deadcode
	// in: body
	signaturesuite.VerifyDocumentResponse
}
