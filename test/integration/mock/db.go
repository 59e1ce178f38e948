package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection for integration tests.
type Db struct {
	DbConn *gorm.DB
	tables []string
}

// NewDb opens the shared test database and migrates the given models. The
// tables map keys are used for truncation between scenarios.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	// A single connection keeps every session on the same in-memory schema.
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	tables := make([]string, 0, len(models))
	for table, m := range models {
		if err := conn.AutoMigrate(m); err != nil {
			panic(fmt.Sprintf("failed to migrate %s: %s", table, err.Error()))
		}
		tables = append(tables, table)
	}

	return &Db{DbConn: conn, tables: tables}
}

// ClearDB removes every row from every managed table.
func (d *Db) ClearDB() error {
	for _, table := range d.tables {
		if err := d.DbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count returns the row count of a table.
func (d *Db) Count(table string) (int64, error) {
	var count int64
	err := d.DbConn.Table(table).Count(&count).Error
	return count, err
}
