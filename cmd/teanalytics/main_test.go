package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestDocument = `{
  "trackedEntityType": "nEenWmSyUEp",
  "headers": [{"program": "prg", "static": "ENROLLMENT_DATE"}],
  "dimensions": [{"item": {"uid": "attr", "kind": "ATTRIBUTE"}, "items": ["a", "b"]}],
  "paging": false
}`

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestSQLCommandFromStdin(t *testing.T) {
	out, err := runRoot(t, requestDocument, "sql")
	require.NoError(t, err)

	var stmt struct {
		SQL     string   `json:"sql"`
		Params  []any    `json:"params"`
		Headers []string `json:"headers"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &stmt))
	assert.Equal(t, []string{"trackedentity", "prg[0].enrollmentdate"}, stmt.Headers)
	assert.Equal(t, []any{"a", "b"}, stmt.Params)
	assert.Contains(t, stmt.SQL, `"attr" in ($1, $2)`)
	assert.NotContains(t, stmt.SQL, "LIMIT")
}

func TestSQLCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(requestDocument), 0o600))

	out, err := runRoot(t, "", "sql", "--request", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"sql"`)
}

func TestConfigurationIsLoggedWithCorrelationID(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	var out, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"sql"})
	cmd.SetIn(strings.NewReader(requestDocument))
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	require.NoError(t, cmd.Execute())

	var configLine map[string]any
	for _, line := range strings.Split(strings.TrimSpace(stderr.String()), "\n") {
		var entry map[string]any
		if jsoniter.Unmarshal([]byte(line), &entry) == nil && entry["message"] == "loaded configuration" {
			configLine = entry
		}
	}
	require.NotNil(t, configLine, stderr.String())
	assert.NotEmpty(t, configLine["correlationId"])
}

func TestSQLCommandReportsBadRequest(t *testing.T) {
	out, err := runRoot(t, `{"headers": []}`, "sql")
	require.Error(t, err)

	var doc map[string]any
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "400", doc["code"])
	assert.Equal(t, "Error", doc["messageType"])
	assert.NotEmpty(t, doc["correlationId"])
}
