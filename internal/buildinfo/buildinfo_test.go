package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewInfo(t *testing.T) {
	tests := []struct {
		name    string
		version string
		date    string
		commit  string
		want    Info
	}{
		{
			name:    "All values set",
			version: "v1.0.0", date: "2026-01-01", commit: "abc123",
			want: Info{Version: "v1.0.0", Date: "2026-01-01", Commit: "abc123"},
		},
		{
			name: "Values not set by ldflags",
			want: Info{Version: "N/A", Date: "N/A", Commit: "N/A"},
		},
		{
			name:    "Only version",
			version: "v2.1.0",
			want:    Info{Version: "v2.1.0", Date: "N/A", Commit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewInfo(tt.version, tt.date, tt.commit))
		})
	}
}

func TestDefaultInfo(t *testing.T) {
	assert.Equal(t, Info{Version: "N/A", Date: "N/A", Commit: "N/A"}, *DefaultInfo())
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	NewInfo("v1.0.0", "2026-01-01", "abc123").Print(&buf)

	assert.Equal(t, "Build version: v1.0.0\nBuild date: 2026-01-01\nBuild commit: abc123\n", buf.String())
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	zap.New(core).Info("Starting", NewInfo("v1.0.0", "", "abc123").Fields()...)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "v1.0.0", fields["version"])
	assert.Equal(t, "N/A", fields["build_date"])
	assert.Equal(t, "abc123", fields["commit"])
}
