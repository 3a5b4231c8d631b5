package config

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets all variables read by FromEnv for the duration of the test.
func clearEnv(t *testing.T) {
	for _, key := range []string{"DBDRIVER", "DBFILE", "DBUSER", "DBPWD", "DBHOST", "DBNAME",
		"LOG_LEVEL", "LOG_FORMAT", "LOGFILE"} {
		t.Setenv(key, "")
	}
}

// TestDefaults expects the sqlite file in the working directory when nothing is configured.
func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "contacts.db", cfg.Database.DSN())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "", cfg.Log.Logfile)
}

func TestSQLiteFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DBFILE", "/tmp/address-book.db")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/address-book.db", cfg.Database.DSN())
}

// TestMySQL expects a DSN that parses time values and reports matched rows.
func TestMySQL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DBDRIVER", "MySQL")
	t.Setenv("DBUSER", "dirk")
	t.Setenv("DBPWD", "bullo92")
	t.Setenv("DBHOST", "db:3306")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)

	parsed, err := mysql.ParseDSN(cfg.Database.DSN())
	require.NoError(t, err)
	assert.Equal(t, "dirk", parsed.User)
	assert.Equal(t, "bullo92", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "contacts", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
}

func TestUnsupportedDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DBDRIVER", "postgres")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "unsupported DBDRIVER")
}
