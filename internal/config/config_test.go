package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:6464", cfg.Bind)
	assert.Equal(t, 128, cfg.CBound)
	assert.Equal(t, "default", cfg.Hasher)
	assert.Equal(t, "vecdeque", cfg.List)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseIntoOverridesAndComments(t *testing.T) {
	cfg := Default()
	input := `
# this is a comment
bind 0.0.0.0:7000
cbound 256
hasher fnv
list linkedlist
`
	err := parseInto(&cfg, strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Bind)
	assert.Equal(t, 256, cfg.CBound)
	assert.Equal(t, "fnv", cfg.Hasher)
	assert.Equal(t, "linkedlist", cfg.List)
}

func TestParseIntoIgnoresUnknownKeys(t *testing.T) {
	cfg := Default()
	err := parseInto(&cfg, strings.NewReader("mystery value\nbind 1.2.3.4:99\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4:99", cfg.Bind)
}

func TestParseIntoRejectsMalformedCBound(t *testing.T) {
	cfg := Default()
	err := parseInto(&cfg, strings.NewReader("cbound notanumber\n"), nil)
	assert.Error(t, err)

	cfg = Default()
	err = parseInto(&cfg, strings.NewReader("cbound -5\n"), nil)
	assert.Error(t, err)
}

func TestParseIntoRejectsUnknownHasherOrListValue(t *testing.T) {
	cfg := Default()
	assert.Error(t, parseInto(&cfg, strings.NewReader("hasher siphash2\n"), nil))

	cfg = Default()
	assert.Error(t, parseInto(&cfg, strings.NewReader("list skiplist\n"), nil))
}
