package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"usuarios/internal/auth"
	"usuarios/internal/config"
	"usuarios/internal/db"
	apperrors "usuarios/internal/errors"
	"usuarios/internal/logging"
	"usuarios/internal/repository"
	"usuarios/internal/service"
)

// SeedUser is one entry of the seed file.
type SeedUser struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

func main() {
	if err := newSeedCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Register users listed in a JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "usuarios.json", `JSON array of {"mail","password"} objects`)
	return cmd
}

func run(ctx context.Context, file string) error {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, "text")

	f, err := os.Open(file)
	if err != nil {
		log.Error("open seed file", "file", file, "err", err)
		return err
	}
	defer f.Close()

	users, err := readSeedUsers(f)
	if err != nil {
		log.Error("read seed file", "file", file, "err", err)
		return err
	}
	log.Info("loaded seed file", "file", file, "users", len(users))

	gormDB, err := db.NewMySQL(cfg.DSN(), db.Options{PingTimeout: cfg.DBConnectTimeout, Logger: log})
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		return err
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		log.Error("failed to run migrations", "err", err)
		return err
	}

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	svc := service.NewAuthService(repository.NewUserRepository(gormDB), hasher, cfg.DBQueryTimeout)

	created, skipped, err := seedUsers(ctx, log, svc, users)
	if err != nil {
		log.Error("failed to seed users", "err", err)
		return err
	}

	log.Info("seed completed", "created", created, "skipped", skipped, "total", created+skipped)
	return nil
}

func readSeedUsers(r io.Reader) ([]SeedUser, error) {
	var users []SeedUser
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers registers each user, skipping entries that are incomplete or whose
// mail is already linked. Any other failure stops the run.
func seedUsers(ctx context.Context, log *slog.Logger, svc service.AuthService, users []SeedUser) (created int, skipped int, err error) {
	for i, u := range users {
		user, err := svc.Register(ctx, u.Mail, u.Password)
		switch {
		case err == nil:
			log.Debug("user created", "mail", u.Mail, "id", user.ID)
			created++
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrValidation):
			log.Info("skipping user", "index", i, "mail", u.Mail, "reason", err)
			skipped++
		default:
			return created, skipped, fmt.Errorf("register %s: %w", u.Mail, err)
		}
	}
	return created, skipped, nil
}
