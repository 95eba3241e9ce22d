package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/account"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/devops"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
)

// seed migrates the schema and creates the default admin when none exists.
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := devops.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()
	dm, err := cfg.OpenDatabase(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer dm.Close()

	created, err := account.EnsureAdmin(ctx, dm, security.NewPasswordHasher(cfg.Auth.PasswordCost), account.SeedAdmin{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed admin")
	}
	logging.Info().Bool("created", created).Str("email", cfg.Seed.AdminEmail).Msg("seed complete")
}
