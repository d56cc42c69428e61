/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signaturesuite implements the WorkdayEd25519Signature2020 signature suite for DID documents.
//
// # Packages for end developer usage
//
// pkg/doc/canonical: Deterministic JSON canonicalization (recursive key sort, leaves preserved byte-for-byte).
//
// pkg/doc/signature/proof: Creation and verification of detached Ed25519 proofs bound to canonical bytes
// and a nonce.
//
// pkg/doc/did: DID document model, DID derivation from a public key, document signing and verification.
//
// pkg/controller: Command and REST operations exposing the suite, used by cmd/didsuite.
//
// Basic workflow
//
//  1. Build an unsigned document, e.g. with did.NewUnsignedDoc(publicKey).
//  2. Sign it with did.SignDocument(doc, privateKey, did.KeyRef(doc.ID, did.InitialKey)).
//  3. Persist the returned did.Doc as JSON.
//  4. Verify it with did.VerifyDocument, did.VerifyDocumentWithEmbeddedKey or did.VerifyRawDocument.
package signaturesuite
