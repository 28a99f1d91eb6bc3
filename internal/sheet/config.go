package sheet

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ovaphlow/pitchfork/service-engagement/pkg/database"
)

const defaultScope = "https://www.googleapis.com/auth/spreadsheets"

type Config struct {
	Driver          string
	SpreadsheetID   string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
	Scope           string
	Endpoint        string
	Timeout         time.Duration
}

// ConfigFromEnv reads store config from environment variables.
func ConfigFromEnv() Config {
	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = "sheets"
	}
	scope := os.Getenv("GOOGLE_SHEETS_SCOPE")
	if scope == "" {
		scope = defaultScope
	}
	timeout := 10 * time.Second
	if d, err := time.ParseDuration(os.Getenv("STORE_TIMEOUT")); err == nil && d > 0 {
		timeout = d
	}
	return Config{
		Driver:        driver,
		SpreadsheetID: os.Getenv("GOOGLE_SHEET_ID"),
		ClientEmail:   os.Getenv("GOOGLE_SHEETS_CLIENT_EMAIL"),
		// keys pasted into .env files carry literal \n sequences
		PrivateKey:      strings.ReplaceAll(os.Getenv("GOOGLE_SHEETS_PRIVATE_KEY"), `\n`, "\n"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		Scope:           scope,
		Endpoint:        os.Getenv("GOOGLE_SHEETS_ENDPOINT"),
		Timeout:         timeout,
	}
}

// Layout maps table names to their header rows. Drivers that own their
// storage create missing tables from it; the sheets driver ignores it.
type Layout map[string][]string

// Open builds the configured driver wrapped with the call timeout. The
// returned close func releases driver resources.
func Open(ctx context.Context, cfg Config, layout Layout) (Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case "sheets":
		s, err := NewSheetsStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return WithTimeout(s, cfg.Timeout), noop, nil
	case "postgres":
		db, err := database.Connect(database.ConfigFromEnv())
		if err != nil {
			return nil, nil, err
		}
		p := NewPostgresStore(db)
		if err := p.EnsureTable(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure tables: %w", err)
		}
		for name, header := range layout {
			if err := p.CreateTable(ctx, name, header); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("create table %s: %w", name, err)
			}
		}
		return WithTimeout(p, cfg.Timeout), db.Close, nil
	case "memory":
		m := NewMemoryStore()
		for name, header := range layout {
			m.Seed(name, Grid{header})
		}
		return m, noop, nil
	default:
		return nil, nil, fmt.Errorf("sheet: unknown STORE_DRIVER %q", cfg.Driver)
	}
}
