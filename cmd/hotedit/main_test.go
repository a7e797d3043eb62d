package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/config"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	stopSource = "package app\n\nfunc Stop() int {\n\treturn 1\n}\n"
	runBefore  = "package app\n\ntype Service struct {\n\tName string\n}\n\nfunc Run() string {\n\treturn \"a\"\n}\n"
	runAfter   = "package app\n\ntype Service struct {\n\tName string\n}\n\nfunc Run() string {\n\treturn \"b\"\n}\n"
	runRude    = "package app\n\ntype Service struct {\n\tName string\n\tPort int\n}\n\nfunc Run() string {\n\treturn \"a\"\n}\n"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeSession(t, newSession(), args...)
}

func executeSession(t *testing.T, s *session, args ...string) (string, error) {
	t.Helper()
	cmd := s.command()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	s.sync()
	return out.String(), err
}

func TestAnalyze_Text(t *testing.T) {
	old := writeFiles(t, map[string]string{"app/service.go": runBefore, "app/stop.go": stopSource})
	updated := writeFiles(t, map[string]string{"app/service.go": runAfter, "app/stop.go": stopSource})
	active := filepath.Join(t.TempDir(), "active.yaml")
	require.NoError(t, os.WriteFile(active, []byte("- id: 1\n  path: app/stop.go\n  oldSpan: {start: 32, end: 40}\n  isLeaf: true\n"), 0o644))

	output, err := execute(t, "analyze", "--old", old, "--new", updated, "--active", active, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, output, "app/service.go\n  update M:app.Run preserve map(")
	assert.Contains(t, output, "active #1 app/stop.go[32..40) -> app/stop.go[32..40)")
	assert.Contains(t, output, "2 documents, 0 rude edits, 1 edits (capabilities: Baseline)")
	assert.EqualValues(t, 0, exitCode(err))
}

func TestAnalyze_RudeEdit(t *testing.T) {
	old := writeFiles(t, map[string]string{"app/service.go": runBefore})
	updated := writeFiles(t, map[string]string{"app/service.go": runRude})

	output, err := execute(t, "analyze", "--old", old, "--new", updated, "--no-color", "--capabilities", "Baseline,AddMethodToExistingType")
	assert.ErrorIs(t, err, errRudeEdits)
	assert.EqualValues(t, 2, exitCode(err))
	assert.Contains(t, output, "HE1014")
	assert.Contains(t, output, "1 rude edits")
}

func TestAnalyze_SyncsLoggerOnRudeEdits(t *testing.T) {
	old := writeFiles(t, map[string]string{"app/service.go": runBefore})
	updated := writeFiles(t, map[string]string{"app/service.go": runRude})

	logs := &bytes.Buffer{}
	writer := &zapcore.BufferedWriteSyncer{WS: zapcore.AddSync(logs), Size: 1 << 16}
	defer func() { _ = writer.Stop() }()
	s := newSession()
	s.logger = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), writer, zapcore.DebugLevel))

	_, err := executeSession(t, s, "analyze", "--old", old, "--new", updated, "--no-color")
	assert.ErrorIs(t, err, errRudeEdits)
	assert.Contains(t, logs.String(), "snapshots loaded")
}

func TestAnalyze_Formats(t *testing.T) {
	old := writeFiles(t, map[string]string{"app/service.go": runBefore})
	updated := writeFiles(t, map[string]string{"app/service.go": runAfter})

	output, err := execute(t, "analyze", "--old", old, "--new", updated, "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Capabilities string `json:"capabilities"`
		Documents    []struct {
			Path  string `json:"path"`
			Edits []struct {
				Kind string `json:"kind"`
				New  struct {
					ID   string `json:"id"`
					Kind string `json:"kind"`
				} `json:"new"`
			} `json:"edits"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.EqualValues(t, "Baseline", decoded.Capabilities)
	require.Len(t, decoded.Documents, 1)
	require.Len(t, decoded.Documents[0].Edits, 1)
	assert.EqualValues(t, "update", decoded.Documents[0].Edits[0].Kind)
	assert.EqualValues(t, "M:app.Run", decoded.Documents[0].Edits[0].New.ID)
	assert.EqualValues(t, "method", decoded.Documents[0].Edits[0].New.Kind)

	output, err = execute(t, "analyze", "--old", old, "--new", updated, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, output, "id: M:app.Run")

	output, err = execute(t, "analyze", "--old", old, "--new", updated, "--format", "msgpack")
	require.NoError(t, err)
	var generic map[string]interface{}
	require.NoError(t, msgpack.Unmarshal([]byte(output), &generic))
	assert.EqualValues(t, "Baseline", generic["capabilities"])
	assert.Len(t, generic["documents"], 1)

	_, err = execute(t, "analyze", "--old", old, "--new", updated, "--format", "xml")
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.EqualValues(t, 1, exitCode(err))
}

func TestAnalyze_MissingFlags(t *testing.T) {
	_, err := execute(t, "analyze", "--old", t.TempDir())
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "hotedit.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("capabilities = [\"Baseline\", \"NewTypeDefinition\"]\n"), 0o644))

	output, err := execute(t, "--config", cfg, "capabilities")
	require.NoError(t, err)
	assert.Contains(t, output, "* Baseline\n")
	assert.Contains(t, output, "* NewTypeDefinition\n")
	assert.Contains(t, output, "  AddMethodToExistingType\n")
}
