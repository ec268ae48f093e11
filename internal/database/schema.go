package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/trackforge/internal/config"
)

// The schema is created in place at startup.  There is no migration history:
// tables are only ever created when missing, never altered.

var sqliteSchema = []string{
	"CREATE TABLE IF NOT EXISTS `user` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"username VARCHAR(100) NOT NULL," +
		"email VARCHAR(100) NOT NULL," +
		"password VARCHAR(200) NOT NULL)",
	"CREATE TABLE IF NOT EXISTS study_session (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"user_id INTEGER REFERENCES `user`(id)," +
		"subject VARCHAR(20) NOT NULL," +
		"hours VARCHAR(50)," +
		"dates VARCHAR(50)," +
		"notes VARCHAR(500) NOT NULL)",
	"CREATE TABLE IF NOT EXISTS application (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"user_id INTEGER REFERENCES `user`(id)," +
		"company_name VARCHAR(100)," +
		"role VARCHAR(50)," +
		"status VARCHAR(50))",
}

var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS `user` (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"username VARCHAR(100) NOT NULL," +
		"email VARCHAR(100) NOT NULL," +
		"password VARCHAR(200) NOT NULL" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS study_session (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"user_id BIGINT UNSIGNED NULL," +
		"subject VARCHAR(20) NOT NULL," +
		"hours VARCHAR(50) NULL," +
		"dates VARCHAR(50) NULL," +
		"notes VARCHAR(500) NOT NULL," +
		"CONSTRAINT fk_study_session_user FOREIGN KEY (user_id) REFERENCES `user`(id)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS application (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"user_id BIGINT UNSIGNED NULL," +
		"company_name VARCHAR(100) NULL," +
		"role VARCHAR(50) NULL," +
		"status VARCHAR(50) NULL," +
		"CONSTRAINT fk_application_user FOREIGN KEY (user_id) REFERENCES `user`(id)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

// EnsureSchema creates the user, study_session and application tables when
// they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case config.DriverSQLite:
		stmts = sqliteSchema
	case config.DriverMySQL:
		stmts = mysqlSchema
	default:
		return fmt.Errorf("no schema for driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
