package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/account"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/communication"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/devops"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/leave"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := devops.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *devops.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	dm, err := cfg.OpenDatabase(ctx)
	if err != nil {
		return err
	}
	defer dm.Close()

	hasher := security.NewPasswordHasher(cfg.Auth.PasswordCost)
	created, err := account.EnsureAdmin(ctx, dm, hasher, account.SeedAdmin{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logging.Info().Str("email", cfg.Seed.AdminEmail).Msg("created default admin")
	}

	tokens, err := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	notifier, err := newNotifier(ctx, cfg)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := web.NewRouter(web.Options{
		BasePath:     cfg.Server.BasePath,
		AllowOrigins: cfg.Server.AllowOrigins,
		ExposeErrors: cfg.Server.ExposeErrors,
		Location:     loc,
	}, web.NewServices(dm, tokens, hasher, loc, notifier))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Int("port", cfg.Server.Port).Str("driver", dm.Driver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newNotifier returns nil when neither Slack nor SES is configured.
func newNotifier(ctx context.Context, cfg *devops.Config) (leave.Notifier, error) {
	n := &communication.LeaveNotifier{}
	if cfg.Notify.SlackToken != "" {
		n.Slack = communication.NewSlack(cfg.Notify.SlackToken, communication.SlackOption{
			InfoChannelID:  cfg.Notify.SlackInfoChannel,
			ErrorChannelID: cfg.Notify.SlackErrorChannel,
		})
	}
	if cfg.Notify.SESFrom != "" {
		mailer, err := communication.NewMailer(ctx, cfg.Notify.SESFrom)
		if err != nil {
			return nil, err
		}
		n.Mailer = mailer
	}
	if n.Slack == nil && n.Mailer == nil {
		return nil, nil
	}
	return n, nil
}
