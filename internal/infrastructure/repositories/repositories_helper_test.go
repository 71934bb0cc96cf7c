package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		created_by TEXT,
		updated_at DATETIME,
		updated_by TEXT,
		deleted_at DATETIME
	);`)
}

func createApplicationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		company_name TEXT NOT NULL,
		position_title TEXT,
		location TEXT NOT NULL,
		application_date DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'Applied',
		company_website TEXT,
		notes TEXT,
		created_at DATETIME,
		created_by TEXT,
		updated_at DATETIME,
		updated_by TEXT,
		deleted_at DATETIME
	);`)
}

func createVerificationCodeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_codes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		code INTEGER NOT NULL,
		token TEXT NOT NULL UNIQUE,
		action TEXT NOT NULL,
		duration INTEGER NOT NULL,
		expiring_date DATETIME NOT NULL,
		is_expired BOOLEAN NOT NULL DEFAULT 0,
		is_used BOOLEAN NOT NULL DEFAULT 0,
		redeemed_at DATETIME,
		created_at DATETIME,
		created_by TEXT,
		updated_at DATETIME,
		updated_by TEXT
	);`)
}

func createEmailConfigTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE email_configs (
		id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		service_id TEXT,
		public_key TEXT,
		private_key TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		created_by TEXT,
		updated_at DATETIME,
		updated_by TEXT
	);`)
	mustExec(t, db, `CREATE TABLE email_templates (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL UNIQUE,
		template_id TEXT NOT NULL,
		created_at DATETIME,
		created_by TEXT,
		updated_at DATETIME,
		updated_by TEXT
	);`)
}
