package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// DefaultFile is the sqlite database file, relative to the working directory.
const DefaultFile = "contacts.db"

// Config holds all settings of the contact book. Every value can be left unset.
type Config struct {
	Database Database
	Log      logger.Options
}

// Database describes where the contacts are persisted.
type Database struct {
	Driver   string
	File     string
	User     string
	Password string
	Host     string
	Name     string
}

// FromEnv reads the configuration from the system's environment variables.
//
// Usage example:
// > DBDRIVER=mysql DBUSER=dirk DBPWD=bullo92 DBHOST=localhost:3306 LOG_LEVEL=debug go run main.go
func FromEnv() (Config, error) {
	cfg := Config{
		Database: Database{
			Driver:   getenv("DBDRIVER", DriverSQLite),
			File:     getenv("DBFILE", DefaultFile),
			User:     os.Getenv("DBUSER"),
			Password: os.Getenv("DBPWD"),
			Host:     getenv("DBHOST", "localhost:3306"),
			Name:     getenv("DBNAME", "contacts"),
		},
		Log: logger.Options{
			Level:   getenv("LOG_LEVEL", "warn"),
			Logfile: os.Getenv("LOGFILE"),
			Format:  getenv("LOG_FORMAT", "text"),
		},
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if cfg.Database.Driver != DriverSQLite && cfg.Database.Driver != DriverMySQL {
		return Config{}, fmt.Errorf("unsupported DBDRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// DSN returns the data source name for the configured driver.
func (d Database) DSN() string {
	if d.Driver != DriverMySQL {
		return d.File
	}
	c := mysql.NewConfig()
	c.User = d.User
	c.Passwd = d.Password
	c.Net = "tcp"
	c.Addr = d.Host
	c.DBName = d.Name
	c.ParseTime = true
	// Report matched instead of changed rows, an update to identical values is not "not found".
	c.ClientFoundRows = true
	return c.FormatDSN()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
