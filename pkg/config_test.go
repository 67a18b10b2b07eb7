package tinyc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect Config
	}{
		{"", false, DefaultConfig()},
		{"trace: true\n", false, Config{MaxCallDepth: DefaultMaxCallDepth, Trace: true}},
		{"max_call_depth: 0\nno_color: true\n", false, Config{NoColor: true}},
		{"max_call_depth: -3\n", true, Config{}},
		{"unknown: 1\n", true, Config{}},
	}

	for _, c := range cases {
		cfg, err := DecodeConfig(strings.NewReader(c.data))
		if c.fail {
			assert.Error(t, err, c.data)
			continue
		}

		require.NoError(t, err, c.data)
		assert.Equal(t, c.expect, cfg, c.data)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinyc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_call_depth: 50\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxCallDepth)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
