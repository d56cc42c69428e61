/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package controller

import (
	"crypto/ed25519"
	"time"

	"github.com/workprotocol/signaturesuite/pkg/controller/command"
	signaturesuitecmd "github.com/workprotocol/signaturesuite/pkg/controller/command/signaturesuite"
	"github.com/workprotocol/signaturesuite/pkg/controller/rest"
	signaturesuiterest "github.com/workprotocol/signaturesuite/pkg/controller/rest/signaturesuite"
	"github.com/workprotocol/signaturesuite/pkg/doc/did"
)

type allOpts struct {
	privKey ed25519.PrivateKey
	keyRef  string
	nonce   func() string
	clock   func() time.Time
}

// Opt represents a controller option.
type Opt func(opts *allOpts)

// WithSigningKey is an option for setting the Ed25519 key used by the sign endpoint.
// An empty keyRef defaults to the key-1 reference of the key's DID.
func WithSigningKey(privKey ed25519.PrivateKey, keyRef string) Opt {
	return func(opts *allOpts) {
		opts.privKey = privKey
		opts.keyRef = keyRef
	}
}

// WithNonceSource is an option for replacing the random UUID nonce of signed documents.
func WithNonceSource(nonce func() string) Opt {
	return func(opts *allOpts) {
		opts.nonce = nonce
	}
}

// WithClock is an option for replacing the clock stamping proof creation times.
func WithClock(clock func() time.Time) Opt {
	return func(opts *allOpts) {
		opts.clock = clock
	}
}

// GetRESTHandlers returns all REST handlers provided by controller.
func GetRESTHandlers(opts ...Opt) ([]rest.Handler, error) {
	restAPIOpts := &allOpts{}
	// Apply options
	for _, opt := range opts {
		opt(restAPIOpts)
	}

	suiteOp := signaturesuiterest.New(restAPIOpts.commandOptions()...)

	var allHandlers []rest.Handler
	allHandlers = append(allHandlers, suiteOp.GetRESTHandlers()...)

	return allHandlers, nil
}

// GetCommandHandlers returns all command handlers provided by controller.
func GetCommandHandlers(opts ...Opt) ([]command.Handler, error) {
	cmdOpts := &allOpts{}
	// Apply options
	for _, opt := range opts {
		opt(cmdOpts)
	}

	suiteCmd := signaturesuitecmd.New(cmdOpts.commandOptions()...)

	var allHandlers []command.Handler
	allHandlers = append(allHandlers, suiteCmd.GetHandlers()...)

	return allHandlers, nil
}

func (o *allOpts) commandOptions() []signaturesuitecmd.Option {
	var cmdOpts []signaturesuitecmd.Option

	if o.privKey != nil {
		cmdOpts = append(cmdOpts, signaturesuitecmd.WithSigningKey(o.privKey, o.keyRef))
	}

	if o.nonce != nil {
		cmdOpts = append(cmdOpts, signaturesuitecmd.WithSignOptions(did.WithNonceSource(o.nonce)))
	}

	if o.clock != nil {
		cmdOpts = append(cmdOpts, signaturesuitecmd.WithClock(o.clock))
	}

	return cmdOpts
}
