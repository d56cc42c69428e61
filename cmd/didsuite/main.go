/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package didsuite (DID Signature Suite Server and tools).
//
// Terms Of Service:
//
//	Schemes: https
//	Version: 0.1.0
//	License: SPDX-License-Identifier: Apache-2.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package main

import (
	"github.com/spf13/cobra"

	"github.com/workprotocol/signaturesuite/cmd/didsuite/doccmd"
	"github.com/workprotocol/signaturesuite/cmd/didsuite/startcmd"
	"github.com/workprotocol/signaturesuite/pkg/common/log"
)

// This is an application which serves the signature suite REST API and runs it as local tools.
func main() {
	rootCmd := &cobra.Command{
		Use: "didsuite",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("signaturesuite/didsuite")

	startCmd, err := startcmd.Cmd(&startcmd.HTTPServer{})
	if err != nil {
		logger.Fatalf(err.Error())
	}

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(doccmd.Cmds()...)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run didsuite: %s", err)
	}
}
