//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body after it has been flattened to JSON fields.
type Mutation func(map[string]any)

// JSONMap round-trips v through JSON so tests can send bodies the typed
// request structs cannot express, such as missing or mistyped fields.
func JSONMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		mut(m)
	}
	return m
}

func Field(key string, value any) Mutation {
	return func(m map[string]any) { m[key] = value }
}

func Without(key string) Mutation {
	return func(m map[string]any) { delete(m, key) }
}
