package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trackify.backend/internal/config"
	"trackify.backend/internal/domain/entities"
	"trackify.backend/internal/infrastructure/repositories"
	"trackify.backend/pkg/crypto"
)

const testSeed = `
email_configs:
  - provider: emailjs
    service_id: ${SEED_TEST_SERVICE}
    public_key: pub
    private_key: priv
templates:
  - action: forgot_password
    template_id: tpl_1
users:
  - firstname: Dev
    lastname: User
    email: dev@trackify.local
    password: password123
    applications:
      - company: Acme
        location: Berlin
        date: "2024-02-12"
        status: Offer
      - company: Globex
        location: Remote
`

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE users (id TEXT PRIMARY KEY, first_name TEXT NOT NULL, last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL, is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME, created_by TEXT, updated_at DATETIME, updated_by TEXT, deleted_at DATETIME)`,
		`CREATE TABLE applications (id TEXT PRIMARY KEY, user_id TEXT NOT NULL, company_name TEXT NOT NULL,
			position_title TEXT, location TEXT NOT NULL, application_date DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'Applied', company_website TEXT, notes TEXT,
			created_at DATETIME, created_by TEXT, updated_at DATETIME, updated_by TEXT, deleted_at DATETIME)`,
		`CREATE TABLE email_configs (id TEXT PRIMARY KEY, provider TEXT NOT NULL, service_id TEXT,
			public_key TEXT, private_key TEXT, is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME, created_by TEXT, updated_at DATETIME, updated_by TEXT)`,
		`CREATE TABLE email_templates (id TEXT PRIMARY KEY, action TEXT NOT NULL UNIQUE, template_id TEXT NOT NULL,
			created_at DATETIME, created_by TEXT, updated_at DATETIME, updated_by TEXT)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestParseSeed(t *testing.T) {
	t.Setenv("SEED_TEST_SERVICE", "service_abc")

	f, err := parseSeed([]byte(testSeed))
	require.NoError(t, err)
	require.Len(t, f.EmailConfigs, 1)
	require.Equal(t, "service_abc", f.EmailConfigs[0].ServiceID)
	require.Len(t, f.Users, 1)
	require.Len(t, f.Users[0].Applications, 2)

	_, err = parseSeed([]byte("email_configs:\n  - provider: pigeon\n"))
	require.ErrorContains(t, err, "unknown provider")

	_, err = parseSeed([]byte("templates:\n  - action: signup\n    template_id: x\n"))
	require.ErrorContains(t, err, "unknown action")

	_, err = parseSeed([]byte("templates:\n  - action: forgot_password\n"))
	require.ErrorContains(t, err, "template_id is required")

	_, err = parseSeed([]byte("users: [unclosed"))
	require.Error(t, err)
}

func TestSeeder_ApplyIsRepeatable(t *testing.T) {
	t.Setenv("SEED_TEST_SERVICE", "service_abc")
	db := newSeedDB(t)
	ctx := context.Background()

	f, err := parseSeed([]byte(testSeed))
	require.NoError(t, err)

	s := newSeeder(db)
	require.NoError(t, s.apply(ctx, f))
	require.NoError(t, s.apply(ctx, f))

	cfg, err := repositories.NewEmailConfigRepository(db).GetActiveConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, entities.EmailProviderEmailJS, cfg.Provider)
	require.Equal(t, "service_abc", cfg.ServiceID)

	tpl, err := repositories.NewEmailConfigRepository(db).GetTemplate(ctx, entities.ActionForgotPassword)
	require.NoError(t, err)
	require.Equal(t, "tpl_1", tpl.TemplateID)

	user, err := repositories.NewUserRepository(db).GetByEmail(ctx, "dev@trackify.local")
	require.NoError(t, err)
	require.True(t, crypto.CheckPassword("password123", user.PasswordHash))

	apps, err := repositories.NewApplicationRepository(db).ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	var sawOffer bool
	for _, a := range apps {
		if a.CompanyName == "Globex" {
			require.Equal(t, entities.StatusApplied, a.Status)
		}
		if a.Status == entities.StatusOffer {
			sawOffer = true
		}
	}
	require.True(t, sawOffer)
}

func TestSeeder_InvalidApplication(t *testing.T) {
	db := newSeedDB(t)
	f := &seedFile{Users: []seedUser{{
		FirstName: "A", LastName: "B", Email: "a@mail.com", Password: "pw",
		Applications: []seedApplication{{CompanyName: "X"}},
	}}}

	err := newSeeder(db).apply(context.Background(), f)
	require.ErrorContains(t, err, `create application "X"`)
}

func TestRun(t *testing.T) {
	origDotenv, origCfg, origRead, origOpen := loadDotenv, loadCfg, readFile, openDB
	t.Cleanup(func() { loadDotenv, loadCfg, readFile, openDB = origDotenv, origCfg, origRead, origOpen })

	t.Setenv("SEED_TEST_SERVICE", "service_abc")
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0o600))

	db := newSeedDB(t)
	loadDotenv = func(...string) error { return nil }
	loadCfg = func() *config.Config { return &config.Config{Server: config.ServerConfig{Env: "development"}} }
	openDB = func(config.DatabaseConfig) (*gorm.DB, error) { return db, nil }

	require.NoError(t, run([]string{"-file", path}))

	require.Error(t, run([]string{"-file", filepath.Join(t.TempDir(), "missing.yaml")}))

	openDB = func(config.DatabaseConfig) (*gorm.DB, error) { return nil, fmt.Errorf("refused") }
	require.ErrorContains(t, run([]string{"-file", path}), "refused")
}
