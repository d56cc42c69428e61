/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package doccmd holds the local document commands of didsuite. They drive the same command handlers
// the REST server exposes.
package doccmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/workprotocol/signaturesuite/internal/keyfile"
	"github.com/workprotocol/signaturesuite/pkg/common/log"
	"github.com/workprotocol/signaturesuite/pkg/controller/command"
	"github.com/workprotocol/signaturesuite/pkg/controller/command/signaturesuite"
)

const (
	keyFileFlagName  = "key-file"
	keyFileEnvKey    = "DIDSUITE_KEY_FILE"
	keyFileFlagUsage = "YAML key file." +
		" Alternatively, this can be set with the following environment variable: " + keyFileEnvKey

	publicKeyFlagName  = "public-key"
	publicKeyFlagUsage = "Base58 encoded Ed25519 public key."

	keyRefFlagName  = "key-ref"
	keyRefFlagUsage = "Key reference to record as the proof creator. Defaults to the key file's reference."

	outFlagName  = "out"
	outFlagUsage = "Path of the key file to write."

	forceFlagName  = "force"
	forceFlagUsage = "Overwrite an existing key file."

	checkIdentityFlagName  = "check-identity"
	checkIdentityFlagUsage = "Also require the document id to be the DID of the verification key."

	stdinArg = "-"
)

var errMissingKey = errors.New("neither " + publicKeyFlagName + " nor " + keyFileFlagName + " have been set")

// Cmds returns the document commands.
// Their results go to stdout, so log lines are sent to the command's error stream.
func Cmds() []*cobra.Command {
	cmds := []*cobra.Command{
		canonicalizeCmd(),
		didCmd(),
		keygenCmd(),
		signCmd(),
		verifyCmd(),
	}

	for _, c := range cmds {
		c.PreRun = func(cmd *cobra.Command, _ []string) {
			log.SetOutput(cmd.ErrOrStderr())
		}
	}

	return cmds
}

func canonicalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canonicalize [file]",
		Short: "Print the canonical form of a JSON object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if !json.Valid(data) {
				return errors.New("input is not valid JSON")
			}

			var resp signaturesuite.CanonicalizeResponse

			err = execCommand(signaturesuite.New().Canonicalize,
				&signaturesuite.CanonicalizeRequest{Document: data}, &resp)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Canonical)

			return err
		},
	}
}

func didCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "did",
		Short: "Derive the DID of an Ed25519 public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			publicKey, err := publicKeyArg(cmd)
			if err != nil {
				return err
			}

			var resp signaturesuite.GenerateDIDResponse

			err = execCommand(signaturesuite.New().GenerateDID,
				&signaturesuite.GenerateDIDRequest{PublicKey: publicKey}, &resp)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), &resp)
		},
	}

	cmd.Flags().StringP(publicKeyFlagName, "p", "", publicKeyFlagUsage)
	cmd.Flags().StringP(keyFileFlagName, "f", "", keyFileFlagUsage)

	return cmd
}

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an Ed25519 key file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString(outFlagName)
			if err != nil {
				return err
			}

			if out == "" {
				return fmt.Errorf("%s flag is mandatory", outFlagName)
			}

			force, err := cmd.Flags().GetBool(forceFlagName)
			if err != nil {
				return err
			}

			if _, err := os.Stat(out); err == nil && !force {
				return fmt.Errorf("%s already exists", out)
			}

			key, err := keyfile.Generate(nil)
			if err != nil {
				return err
			}

			if err := keyfile.Save(out, key); err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), &signaturesuite.GenerateDIDResponse{DID: key.DID, KeyRef: key.KeyRef})
		},
	}

	cmd.Flags().StringP(outFlagName, "o", "", outFlagUsage)
	cmd.Flags().Bool(forceFlagName, false, forceFlagUsage)

	return cmd
}

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Sign an unsigned DID document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := getUserSetVar(cmd, keyFileFlagName, keyFileEnvKey)
			if err != nil {
				return err
			}

			if path == "" {
				return fmt.Errorf("%s flag is mandatory", keyFileFlagName)
			}

			key, err := keyfile.Load(path)
			if err != nil {
				return err
			}

			keyRef, err := cmd.Flags().GetString(keyRefFlagName)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			request := signaturesuite.SignDocumentRequest{KeyRef: keyRef}

			if err := json.Unmarshal(data, &request.Document); err != nil {
				return fmt.Errorf("parse unsigned document: %w", err)
			}

			var resp signaturesuite.SignDocumentResponse

			suiteCmd := signaturesuite.New(signaturesuite.WithSigningKey(key.PrivateKey, key.KeyRef))

			if err := execCommand(suiteCmd.SignDocument, &request, &resp); err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), resp.Document)
		},
	}

	cmd.Flags().StringP(keyFileFlagName, "f", "", keyFileFlagUsage)
	cmd.Flags().StringP(keyRefFlagName, "r", "", keyRefFlagUsage)

	return cmd
}

type verifyResult struct {
	path string
	resp signaturesuite.VerifyDocumentResponse
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify file...",
		Short: "Verify signed DID documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			publicKey, err := cmd.Flags().GetString(publicKeyFlagName)
			if err != nil {
				return err
			}

			checkIdentity, err := cmd.Flags().GetBool(checkIdentityFlagName)
			if err != nil {
				return err
			}

			results, err := verifyFiles(signaturesuite.New(), args, publicKey, checkIdentity)
			if err != nil {
				return err
			}

			failed := 0

			for _, r := range results {
				if r.resp.Verified {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: verified\n", r.path)

					continue
				}

				failed++

				fmt.Fprintf(cmd.OutOrStdout(), "%s: not verified: %s\n", r.path, r.resp.Reason)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed verification", failed, len(results))
			}

			return nil
		},
	}

	cmd.Flags().StringP(publicKeyFlagName, "p", "", publicKeyFlagUsage)
	cmd.Flags().Bool(checkIdentityFlagName, false, checkIdentityFlagUsage)

	return cmd
}

func verifyFiles(suiteCmd *signaturesuite.Command, paths []string, publicKey string,
	checkIdentity bool) ([]verifyResult, error) {
	results := make([]verifyResult, len(paths))

	var g errgroup.Group

	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			data, err := os.ReadFile(path) //nolint:gosec
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			results[i].path = path

			request := &signaturesuite.VerifyDocumentRequest{
				Document:      data,
				PublicKey:     publicKey,
				CheckIdentity: checkIdentity,
			}

			if err := execCommand(suiteCmd.VerifyDocument, request, &results[i].resp); err != nil {
				results[i].resp = signaturesuite.VerifyDocumentResponse{Reason: err.Error()}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// execCommand runs a controller command the way the REST handlers do, with JSON in and out.
func execCommand(exec command.Exec, request, response interface{}) error {
	var req bytes.Buffer

	// raw documents must reach the command byte for byte
	enc := json.NewEncoder(&req)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(request); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	var buf bytes.Buffer

	if cmdErr := exec(&buf, &req); cmdErr != nil {
		return fmt.Errorf("%w (code %d)", cmdErr, cmdErr.Code())
	}

	return json.Unmarshal(buf.Bytes(), response)
}

func publicKeyArg(cmd *cobra.Command) (string, error) {
	publicKey, err := cmd.Flags().GetString(publicKeyFlagName)
	if err != nil {
		return "", err
	}

	if publicKey != "" {
		return publicKey, nil
	}

	path, err := getUserSetVar(cmd, keyFileFlagName, keyFileEnvKey)
	if err != nil {
		return "", err
	}

	if path == "" {
		return "", errMissingKey
	}

	key, err := keyfile.Load(path)
	if err != nil {
		return "", err
	}

	return base58.Encode(key.PublicKey), nil
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	return os.Getenv(envKey), nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == stdinArg {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(args[0])
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
