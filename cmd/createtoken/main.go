package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/devops"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
)

// createtoken prints a session token for an existing user.
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	email := flag.String("email", "", "email of the user")
	ttl := flag.Duration("ttl", 0, "token lifetime, 0 for the configured default")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: createtoken -email user@example.com [-ttl 1h]")
		os.Exit(2)
	}

	cfg, err := devops.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *ttl > 0 {
		cfg.Auth.TokenTTL = *ttl
	}

	ctx := context.Background()
	dm, err := cfg.OpenDatabase(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer dm.Close()

	var user model.User
	err = dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("email = ? AND is_active = ?", *email, true).Take(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Fprintf(os.Stderr, "no active user with email %s\n", *email)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	issuer, err := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	token, err := issuer.Issue(user.ID, user.Role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
