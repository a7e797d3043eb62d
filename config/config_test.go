package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/config"
)

func TestLoad(t *testing.T) {
	var testCases = []struct {
		description  string
		name         string
		content      string
		expectCaps   capability.Set
		expectFormat string
		expectStrict bool
		expectTests  bool
		wantErr      bool
	}{
		{
			description: "yaml",
			name:        "hotedit.yaml",
			content: `capabilities: [Baseline, AddMethodToExistingType]
strict: true
concurrency: 4
output:
  format: json
inspector:
  skipTests: false
`,
			expectCaps:   capability.Of(capability.Baseline, capability.AddMethodToExistingType),
			expectFormat: config.FormatJSON,
			expectStrict: true,
			expectTests:  true,
		},
		{
			description: "toml",
			name:        "hotedit.toml",
			content: `capabilities = ["all"]

[output]
format = "msgpack"
`,
			expectCaps:   capability.All,
			expectFormat: config.FormatMsgpack,
		},
		{
			description:  "empty yaml keeps defaults",
			name:         "empty.yml",
			content:      "",
			expectCaps:   capability.Baseline,
			expectFormat: config.FormatText,
		},
		{
			description: "unknown capability",
			name:        "bad.yaml",
			content:     "capabilities: [Teleport]\n",
			wantErr:     true,
		},
		{
			description: "unknown yaml key",
			name:        "typo.yaml",
			content:     "strictt: true\n",
			wantErr:     true,
		},
		{
			description: "unknown toml key",
			name:        "typo.toml",
			content:     "concurency = 2\n",
			wantErr:     true,
		},
		{
			description: "unsupported format",
			name:        "hotedit.json",
			content:     "{}",
			wantErr:     true,
		},
		{
			description: "unsupported output",
			name:        "output.yaml",
			content:     "output:\n  format: xml\n",
			wantErr:     true,
		},
	}
	dir := t.TempDir()
	fs := afs.New()
	for _, testCase := range testCases {
		location := filepath.Join(dir, testCase.name)
		require.NoError(t, os.WriteFile(location, []byte(testCase.content), 0o644), testCase.description)
		cfg, err := config.Load(context.Background(), fs, location)
		if testCase.wantErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		caps, err := cfg.CapabilitySet()
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expectCaps, caps, testCase.description)
		assert.EqualValues(t, testCase.expectFormat, cfg.Output.Format, testCase.description)
		assert.EqualValues(t, testCase.expectStrict, cfg.Strict, testCase.description)
		assert.EqualValues(t, !testCase.expectTests, cfg.Inspector.SkipTests, testCase.description)
	}
}

func TestConfig_Logger(t *testing.T) {
	cfg := config.Default()
	logger, err := cfg.Logger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	logger, err = cfg.Logger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	cfg.Logging.Level = "loud"
	_, err = cfg.Logger(false)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestConfig_Options(t *testing.T) {
	cfg := config.Default()
	cfg.Capabilities = []string{"Baseline", "NewTypeDefinition"}
	options, err := cfg.Options(nil)
	require.NoError(t, err)
	assert.Len(t, options, 4)

	cfg.Capabilities = []string{"Nope"}
	_, err = cfg.Options(nil)
	assert.ErrorIs(t, err, capability.ErrUnknown)
}
