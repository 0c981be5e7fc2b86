package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_attendance.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestMigrations_SchemaGuards(t *testing.T) {
	raw, err := migrationFiles.ReadFile("migrations/0001_attendance.sql")
	require.NoError(t, err)

	sql := string(raw)
	assert.Contains(t, sql, "UNIQUE (employee_id, date)")
	assert.Contains(t, sql, "CHECK (status IN ('present', 'absent', 'halfDay'))")
}
