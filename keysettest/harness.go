// Package keysettest provides the sqlmock/sqlite driver harness shared by
// the keyset package's tests, mirroring the teacher's own misc_test.go
// (newGORMMySQLMock / newGORMPostgresMock).
package keysettest

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewMySQLMock opens a *gorm.DB backed by a sqlmock connection speaking the
// MySQL dialect, for asserting exact generated SQL and argument lists.
func NewMySQLMock() (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return db, mock, nil
}

// NewPostgresMock is NewMySQLMock's Postgres-dialect counterpart.
func NewPostgresMock() (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	dialector := postgres.New(postgres.Config{Conn: mockDB})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return db, mock, nil
}

// NewSQLite opens a real (non-mocked) in-memory sqlite database, for tests
// that need an actual query planner rather than protocol-level assertions.
func NewSQLite() (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
}
