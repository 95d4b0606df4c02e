package db

import (
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Open connects to MySQL when mysqlDSN is set, otherwise to the SQLite file
func Open(mysqlDSN, sqliteFile string, debug bool) (*gorm.DB, error) {
	config := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if debug {
		config.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}
	if mysqlDSN != "" {
		return gorm.Open(mysql.Open(mysqlDSN), config)
	}
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(sqliteFile)), config)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite has a single writer and ":memory:" databases are per connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// SQLiteDSN turns foreign key enforcement on, photos must reference an existing album
func SQLiteDSN(file string) string {
	if strings.Contains(file, "_foreign_keys=") {
		return file
	}
	if strings.Contains(file, "?") {
		return file + "&_foreign_keys=on"
	}
	return file + "?_foreign_keys=on"
}

func Init(mysqlDSN, sqliteFile string, debug bool) {
	db, err := Open(mysqlDSN, sqliteFile, debug)
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
