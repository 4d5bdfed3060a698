package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/FarukBas12/servistakip-sub000/internal/auth"
	"github.com/FarukBas12/servistakip-sub000/internal/config"
	"github.com/FarukBas12/servistakip-sub000/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	seed := flag.Bool("seed", false, "create the default warehouse user after migrating")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := migrate(ctx, db, *dir); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if *seed {
		if err := seedOpsUser(ctx, db, cfg.Ops.UserEmail); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("migrations applied")
}

func migrate(ctx context.Context, db *sql.DB, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}

	sort.Strings(files)

	for _, file := range files {
		contents, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		slog.Info("applying migration", "file", filepath.Base(file))

		if _, err := db.ExecContext(ctx, string(contents)); err != nil {
			return err
		}
	}

	return nil
}

// seedOpsUser inserts the account the TUI records movements under.
// Set SEED_PASSWORD to override the default, and change it after first login.
func seedOpsUser(ctx context.Context, db *sql.DB, email string) error {
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "degistir123"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ('Depo', $1, $2, 'admin')
		ON CONFLICT (email) DO NOTHING`,
		email, hash,
	)
	if err != nil {
		return err
	}

	slog.Info("seeded warehouse user", "email", email)

	return nil
}
