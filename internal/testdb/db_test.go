package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Run("prefers DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://a")
		t.Setenv("CALENDAR_TEST_DB_URL", "postgres://b")
		assert.Equal(t, "postgres://a", GetTestDatabaseURL())
		assert.True(t, IsIntegrationTestEnvironment())
	})

	t.Run("falls back to CALENDAR_TEST_DB_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("CALENDAR_TEST_DB_URL", "postgres://b")
		assert.Equal(t, "postgres://b", GetTestDatabaseURL())
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("CALENDAR_TEST_DB_URL", "")
		assert.False(t, IsIntegrationTestEnvironment())
		_, err := Open()
		assert.Error(t, err)
	})
}
