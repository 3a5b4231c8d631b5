package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"gitlab.com/dirk.krummacker/contact-book/internal/config"
)

// mysqlDuplicateEntry and mysqlBadNull are the MySQL server error numbers for a violated unique
// key and a NULL written to a NOT NULL column.
const (
	mysqlDuplicateEntry = 1062
	mysqlBadNull        = 1048
)

// schemas holds the contacts table definition per driver.
var schemas = map[string]string{
	config.DriverSQLite: `
		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			phone TEXT UNIQUE NOT NULL,
			email TEXT,
			address TEXT
		)`,
	config.DriverMySQL: `
		CREATE TABLE IF NOT EXISTS contacts (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name TEXT NOT NULL,
			phone VARCHAR(16) NOT NULL UNIQUE,
			email TEXT,
			address TEXT
		)`,
}

// ErrConstraintViolation is returned when a write breaks a rule of the schema, most notably the
// uniqueness of phone numbers.
var ErrConstraintViolation = errors.New("store: constraint violation")

// StorageError is returned for every backend failure that is not a constraint violation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store owns the connection to the contacts table.
type Store struct {
	db  *sqlx.DB
	log *slog.Logger
}

// Open connects to the database described by cfg. For sqlite the file is created if it does not
// exist yet. The schema is not touched, call Initialize for that.
func Open(cfg config.Database, log *slog.Logger) (*Store, error) {
	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, &StorageError{Op: "connect", Err: err}
	}
	return New(sqlDB, cfg.Driver, log), nil
}

// New wraps an already opened sql database. The database argument can be a real database for
// production use or a mock database within unit tests.
func New(sqlDB *sql.DB, driverName string, log *slog.Logger) *Store {
	// One caller, one writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	return &Store{db: sqlx.NewDb(sqlDB, driverName), log: log}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the contacts table if it does not exist. It is safe to call on every
// startup, existing rows are left alone.
func (s *Store) Initialize() error {
	schema, ok := schemas[s.db.DriverName()]
	if !ok {
		return &StorageError{Op: "initialize", Err: fmt.Errorf("no schema for driver %q", s.db.DriverName())}
	}
	if _, err := s.db.Exec(schema); err != nil {
		s.log.Error("could not create contacts table", "err", err)
		return &StorageError{Op: "initialize", Err: err}
	}
	s.log.Debug("contacts table ready", "driver", s.db.DriverName())
	return nil
}

// Execute runs a single insert, update or delete statement with bound arguments in its own
// transaction and commits it.
func (s *Store) Execute(statement string, args ...any) (sql.Result, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, s.classify("begin", err)
	}
	result, err := tx.Exec(s.db.Rebind(statement), args...)
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			s.log.Error("rollback failed", "err", errRollback)
		}
		return nil, s.classify("execute", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.classify("commit", err)
	}
	return result, nil
}

// Query runs a read statement with bound arguments and scans all rows into dest, which must be a
// pointer to a slice. Rows come in the order the statement defines.
func (s *Store) Query(dest any, statement string, args ...any) error {
	if err := s.db.Select(dest, s.db.Rebind(statement), args...); err != nil {
		s.log.Error("query failed", "err", err)
		return &StorageError{Op: "query", Err: err}
	}
	return nil
}

// classify turns a driver error into ErrConstraintViolation or a StorageError.
func (s *Store) classify(op string, err error) error {
	if isConstraintViolation(err) {
		s.log.Debug("constraint violated", "op", op, "err", err)
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	s.log.Error("storage failure", "op", op, "err", err)
	return &StorageError{Op: op, Err: err}
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry || mysqlErr.Number == mysqlBadNull
	}
	return false
}
