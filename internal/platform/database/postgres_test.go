package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	foreignKey := fmt.Errorf("insert member: %w", &pgconn.PgError{Code: "23503"})
	badUUID := &pgconn.PgError{Code: "22P02"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(foreignKey))

	assert.True(t, IsForeignKeyViolation(foreignKey))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsForeignKeyViolation(badUUID))
	assert.False(t, IsForeignKeyViolation(errors.New("connection reset")))
	assert.False(t, IsForeignKeyViolation(nil))
}
