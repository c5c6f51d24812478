package bootstrap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func stripTimestamp(t *testing.T, raw []byte) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	delete(m, "timestamp")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
