package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/InQaaaaGit/label_bot.git/internal/buildinfo"
	"github.com/InQaaaaGit/label_bot.git/internal/config"
)

func TestRunInvalidLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIToken = "token"
	cfg.LogLevel = "loud"

	err := run(context.Background(), cfg, buildinfo.DefaultInfo())
	assert.ErrorContains(t, err, "invalid log level")
}

func TestBuildInfoFromLdflags(t *testing.T) {
	// Без -ldflags переменные пусты
	info := buildinfo.NewInfo(buildVersion, buildDate, buildCommit)
	assert.Equal(t, "N/A", info.Version)
	assert.Equal(t, "N/A", info.Date)
	assert.Equal(t, "N/A", info.Commit)
}
