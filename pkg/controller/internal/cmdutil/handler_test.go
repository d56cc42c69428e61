/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmdutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workprotocol/signaturesuite/pkg/controller/command"
)

func TestHTTPHandler(t *testing.T) {
	var read int

	h := NewHTTPHandler("/signaturesuite/verify", http.MethodPost, func(rw http.ResponseWriter, req *http.Request) {
		n, err := io.Copy(io.Discard, req.Body)
		read = int(n)

		if err != nil {
			rw.WriteHeader(http.StatusBadRequest)
		}
	})

	require.Equal(t, "/signaturesuite/verify", h.Path())
	require.Equal(t, http.MethodPost, h.Method())

	t.Run("body within limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Handle()(rr, httptest.NewRequest(http.MethodPost, h.Path(), bytes.NewReader(make([]byte, 1024))))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, 1024, read)
	})

	t.Run("body over limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		body := bytes.NewReader(make([]byte, MaxRequestBytes+1))
		h.Handle()(rr, httptest.NewRequest(http.MethodPost, h.Path(), body))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Equal(t, MaxRequestBytes, read)
	})
}

func TestCommandHandler(t *testing.T) {
	exec := func(rw io.Writer, req io.Reader) command.Error { return nil }

	h := NewCommandHandler("signaturesuite", "VerifyDocument", exec)
	require.Equal(t, "signaturesuite", h.Name())
	require.Equal(t, "VerifyDocument", h.Method())
	require.Nil(t, h.Handle()(nil, nil))
}
