package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := [3]string{Version, CommitSHA, BuildDate}
	t.Cleanup(func() { Version, CommitSHA, BuildDate = orig[0], orig[1], orig[2] })

	Version, CommitSHA, BuildDate = "v1.2.3", "abc123", "2026-01-02"
	assert.Equal(t, "regnotify v1.2.3 (commit abc123, built 2026-01-02)", String())
	assert.Equal(t, map[string]string{
		"version":    "v1.2.3",
		"commit":     "abc123",
		"build_date": "2026-01-02",
	}, Fields())
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", CommitSHA)
}
