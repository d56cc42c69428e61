/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testSeed  = "12345678901234567890123456789012"
	issuerDID = "did:work:6sYe1y3zXhmyrBkgHgAgaq"
)

func TestFromSeed(t *testing.T) {
	k, err := FromSeed([]byte(testSeed))
	require.NoError(t, err)
	require.Equal(t, issuerDID, k.DID)
	require.Equal(t, issuerDID+"#key-1", k.KeyRef)
	require.Len(t, k.PrivateKey, 64)

	_, err = FromSeed([]byte("short"))
	require.ErrorIs(t, err, ErrInvalidSeed)
}

func TestGenerate(t *testing.T) {
	k, err := Generate(strings.NewReader(testSeed))
	require.NoError(t, err)
	require.Equal(t, issuerDID, k.DID)

	random, err := Generate(nil)
	require.NoError(t, err)
	require.NotEqual(t, k.DID, random.DID)

	_, err = Generate(strings.NewReader("too short"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	k, err := FromSeed([]byte(testSeed))
	require.NoError(t, err)

	data, err := Marshal(k)
	require.NoError(t, err)
	require.Contains(t, string(data), "did: "+issuerDID)
	require.Contains(t, string(data), "publicKey: z4CcKDtU1JNGi8U4D8Rv9CHzfmF7xzaxEAPFA54eQjRHF")

	loaded, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, k, loaded)
}

func TestUnmarshal(t *testing.T) {
	k, err := FromSeed([]byte(testSeed))
	require.NoError(t, err)

	data, err := Marshal(k)
	require.NoError(t, err)

	t.Run("seed only", func(t *testing.T) {
		var seedLine string

		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "seed:") {
				seedLine = line
			}
		}

		loaded, err := Unmarshal([]byte(seedLine + "\n"))
		require.NoError(t, err)
		require.Equal(t, k, loaded)
	})

	t.Run("custom key reference", func(t *testing.T) {
		custom := bytes.Replace(data, []byte("#key-1"), []byte("#signing"), 1)

		loaded, err := Unmarshal(custom)
		require.NoError(t, err)
		require.Equal(t, issuerDID+"#signing", loaded.KeyRef)
	})

	t.Run("did mismatch", func(t *testing.T) {
		other := bytes.Replace(data, []byte("did: "+issuerDID), []byte("did: did:work:other"), 1)

		_, err := Unmarshal(other)
		require.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("public key mismatch", func(t *testing.T) {
		other := bytes.Replace(data, []byte("publicKey: z4C"), []byte("publicKey: z5C"), 1)

		_, err := Unmarshal(other)
		require.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("missing seed", func(t *testing.T) {
		_, err := Unmarshal([]byte("did: " + issuerDID + "\n"))
		require.ErrorIs(t, err, ErrInvalidSeed)
	})

	t.Run("bad seed encoding", func(t *testing.T) {
		_, err := Unmarshal([]byte("seed: not-multibase!\n"))
		require.ErrorIs(t, err, ErrInvalidSeed)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Unmarshal([]byte("seed: [\n"))
		require.Error(t, err)
	})
}

func TestSaveLoad(t *testing.T) {
	k, err := FromSeed([]byte(testSeed))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.yaml")
	require.NoError(t, Save(path, k))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, k, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	require.Error(t, Save(filepath.Join(t.TempDir(), "missing", "key.yaml"), k))
}
