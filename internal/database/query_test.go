package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	query := "UPDATE t SET a = ?, b = ? WHERE c = ?"

	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE c = $3", Rebind(DriverPostgres, query))
	assert.Equal(t, query, Rebind(DriverSQLite, query))
}

func TestTimestamp_Scan(t *testing.T) {
	expected := time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"time value", expected},
		{"sqlite text", "2025-03-04 10:20:30+00:00"},
		{"sqlite bytes", []byte("2025-03-04 10:20:30")},
		{"rfc3339", "2025-03-04T10:20:30Z"},
		{"go string form", "2025-03-04 10:20:30 +0000 UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.Scan(tt.src))
			assert.True(t, expected.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("yesterday"))
}
