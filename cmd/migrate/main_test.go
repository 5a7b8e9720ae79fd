package main

import (
	"testing"

	"dsa_arena/internal/platform/config"
	"dsa_arena/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run("sideways", config.FromEnv(), logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "sideways"`)
}

func TestRunReturnsConnectError(t *testing.T) {
	cfg := config.FromEnv()
	cfg.DBConnStr = "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable connect_timeout=2"

	err := run("status", cfg, logger.Nop())
	assert.ErrorContains(t, err, "connect to database")
}
