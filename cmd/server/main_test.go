package main

import (
	"testing"

	"dsa_arena/internal/platform/config"
	"dsa_arena/internal/platform/logger"

	"github.com/stretchr/testify/assert"
)

func TestRunReturnsStartupErrors(t *testing.T) {
	cfg := config.FromEnv()
	cfg.DBConnStr = "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable connect_timeout=2"

	err := run(cfg, logger.Nop())
	assert.ErrorContains(t, err, "connect to database")
}
