package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsAreOrderedAndReversible(t *testing.T) {
	migs := Migrations()
	assert.NotEmpty(t, migs)

	prev := 0
	for _, m := range migs {
		assert.Greater(t, m.Version, prev, "migration %s out of order", m.Name)
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpSQL, "migration %d has no up SQL", m.Version)
		assert.NotEmpty(t, m.DownSQL, "migration %d has no down SQL", m.Version)
		prev = m.Version
	}
}

func TestProgressMigrationKeysOnUserAndProblem(t *testing.T) {
	// The progress upsert relies on this key for ON CONFLICT.
	assert.Contains(t, migration004Up, "PRIMARY KEY (user_id, problem_id)")
	assert.Contains(t, migration002Up, "PRIMARY KEY (group_id, user_id)")
}
