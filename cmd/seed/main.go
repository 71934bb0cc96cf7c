// seed loads the email provider config, templates and optional dev accounts
// from a YAML file. Values of the form ${VAR} are read from the environment.
// Re-running is safe: configs and templates are upserted, existing users are skipped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trackify.backend/internal/config"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	pgsource "trackify.backend/internal/infrastructure/datasources/postgres"
	"trackify.backend/internal/infrastructure/repositories"
	"trackify.backend/internal/usecases"
	"trackify.backend/pkg/crypto"
	"trackify.backend/pkg/logger"
	"trackify.backend/pkg/utils"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	readFile   = os.ReadFile
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := pgsource.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	}
)

type seedFile struct {
	EmailConfigs []seedEmailConfig `yaml:"email_configs"`
	Templates    []seedTemplate    `yaml:"templates"`
	Users        []seedUser        `yaml:"users"`
}

type seedEmailConfig struct {
	Provider   string `yaml:"provider"`
	ServiceID  string `yaml:"service_id"`
	PublicKey  string `yaml:"public_key"`
	PrivateKey string `yaml:"private_key"`
	Active     *bool  `yaml:"active"`
}

type seedTemplate struct {
	Action     string `yaml:"action"`
	TemplateID string `yaml:"template_id"`
}

type seedUser struct {
	FirstName    string            `yaml:"firstname"`
	LastName     string            `yaml:"lastname"`
	Email        string            `yaml:"email"`
	Password     string            `yaml:"password"`
	Applications []seedApplication `yaml:"applications"`
}

type seedApplication struct {
	CompanyName     string `yaml:"company"`
	PositionTitle   string `yaml:"position"`
	Location        string `yaml:"location"`
	ApplicationDate string `yaml:"date"`
	Status          string `yaml:"status"`
	CompanyWebsite  string `yaml:"website"`
	Notes           string `yaml:"notes"`
}

// parseSeed decodes data after expanding ${VAR} references
func parseSeed(data []byte) (*seedFile, error) {
	var f seedFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	for i, c := range f.EmailConfigs {
		switch entities.EmailProvider(c.Provider) {
		case entities.EmailProviderEmailJS, entities.EmailProviderSMTP:
		default:
			return nil, fmt.Errorf("email_configs[%d]: unknown provider %q", i, c.Provider)
		}
	}
	for i, t := range f.Templates {
		if entities.VerificationAction(t.Action) != entities.ActionForgotPassword {
			return nil, fmt.Errorf("templates[%d]: unknown action %q", i, t.Action)
		}
		if t.TemplateID == "" {
			return nil, fmt.Errorf("templates[%d]: template_id is required", i)
		}
	}
	return &f, nil
}

type seeder struct {
	emailConfigs *repositories.EmailConfigRepository
	users        *repositories.UserRepository
	applications *usecases.ApplicationUsecase
	now          func() time.Time
}

func newSeeder(db *gorm.DB) *seeder {
	return &seeder{
		emailConfigs: repositories.NewEmailConfigRepository(db),
		users:        repositories.NewUserRepository(db),
		applications: usecases.NewApplicationUsecase(repositories.NewApplicationRepository(db)),
		now:          time.Now,
	}
}

func (s *seeder) apply(ctx context.Context, f *seedFile) error {
	now := s.now()

	for _, c := range f.EmailConfigs {
		cfg := &entities.EmailConfig{
			ID:         utils.GenerateUUIDv7(),
			Provider:   entities.EmailProvider(c.Provider),
			ServiceID:  c.ServiceID,
			PublicKey:  c.PublicKey,
			PrivateKey: c.PrivateKey,
			IsActive:   c.Active == nil || *c.Active,
		}
		cfg.Stamp(now, nil)
		if err := s.emailConfigs.UpsertConfig(ctx, cfg); err != nil {
			return fmt.Errorf("upsert %s config: %w", c.Provider, err)
		}
		logger.Info(ctx, "Email config seeded", zap.String("provider", c.Provider))
	}

	for _, t := range f.Templates {
		tpl := &entities.EmailTemplate{
			ID:         utils.GenerateUUIDv7(),
			Action:     entities.VerificationAction(t.Action),
			TemplateID: t.TemplateID,
		}
		tpl.Stamp(now, nil)
		if err := s.emailConfigs.UpsertTemplate(ctx, tpl); err != nil {
			return fmt.Errorf("upsert %s template: %w", t.Action, err)
		}
		logger.Info(ctx, "Email template seeded", zap.String("action", t.Action))
	}

	for _, u := range f.Users {
		if err := s.seedUser(ctx, u, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedUser(ctx context.Context, u seedUser, now time.Time) error {
	_, err := s.users.GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		logger.Info(ctx, "User exists, skipping", zap.String("email", u.Email))
		return nil
	case !errors.Is(err, domainerrors.ErrNotFound):
		return fmt.Errorf("lookup %s: %w", u.Email, err)
	}

	hash, err := crypto.HashPassword(u.Password)
	if err != nil {
		return err
	}
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	user.Stamp(now, nil)
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create %s: %w", u.Email, err)
	}

	for _, a := range u.Applications {
		input := &entities.CreateApplicationInput{
			CompanyName:     a.CompanyName,
			PositionTitle:   a.PositionTitle,
			Location:        a.Location,
			ApplicationDate: a.ApplicationDate,
			CompanyWebsite:  a.CompanyWebsite,
			Notes:           a.Notes,
		}
		if a.Status != "" {
			status := a.Status
			input.Status = &status
		}
		if _, err := s.applications.Create(ctx, user.ID, input); err != nil {
			return fmt.Errorf("create application %q for %s: %w", a.CompanyName, u.Email, err)
		}
	}
	logger.Info(ctx, "User seeded", zap.String("email", u.Email), zap.Int("applications", len(u.Applications)))
	return nil
}

func run(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	path := fs.String("file", "config/seed.yaml", "Seed file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	data, err := readFile(*path)
	if err != nil {
		return err
	}
	f, err := parseSeed(data)
	if err != nil {
		return err
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	return newSeeder(db).apply(context.Background(), f)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
