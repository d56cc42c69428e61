/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package canonical produces the deterministic JSON form that the signature suite signs.
//
// Object keys are sorted by codepoint order of their decoded value at every depth, array order is
// kept, and every scalar leaf and key literal is copied byte-for-byte from the input. Output is compact.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidInputKind is returned when the root JSON value is not an object.
	ErrInvalidInputKind = errors.New("canonical: root value must be a JSON object")

	// ErrInvalidJSON is returned when the input is not well-formed UTF-8 JSON.
	ErrInvalidJSON = errors.New("canonical: malformed JSON")
)

// Canonicalize returns the canonical form of the given JSON object text.
func Canonicalize(jsonText string) (string, error) {
	out, err := CanonicalizeBytes([]byte(jsonText))
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// CanonicalizeBytes returns the canonical form of the given JSON object bytes.
func CanonicalizeBytes(doc []byte) ([]byte, error) {
	if !utf8.Valid(doc) || !gjson.ValidBytes(doc) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInputKind, kindOf(root))
	}

	var buf bytes.Buffer

	buf.Grow(len(doc))
	writeValue(&buf, root)

	return buf.Bytes(), nil
}

// Marshal serializes v with encoding/json and returns its canonical form.
func Marshal(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical: marshal value: %w", err)
	}

	return CanonicalizeBytes(raw)
}

type member struct {
	rawKey string
	value  gjson.Result
}

func writeValue(buf *bytes.Buffer, v gjson.Result) {
	switch {
	case v.IsObject():
		writeObject(buf, v)
	case v.IsArray():
		writeArray(buf, v)
	default:
		buf.WriteString(v.Raw)
	}
}

func writeObject(buf *bytes.Buffer, obj gjson.Result) {
	members := map[string]member{}

	obj.ForEach(func(key, value gjson.Result) bool {
		// last occurrence of a duplicate key wins
		members[key.Str] = member{rawKey: key.Raw, value: value}

		return true
	})

	keys := maps.Keys(members)
	slices.Sort(keys)

	buf.WriteByte('{')

	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		m := members[k]
		buf.WriteString(m.rawKey)
		buf.WriteByte(':')
		writeValue(buf, m.value)
	}

	buf.WriteByte('}')
}

func writeArray(buf *bytes.Buffer, arr gjson.Result) {
	buf.WriteByte('[')

	first := true

	arr.ForEach(func(_, value gjson.Result) bool {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		writeValue(buf, value)

		return true
	})

	buf.WriteByte(']')
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True || v.Type == gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
