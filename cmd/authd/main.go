package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/simple-auth/simple-auth/pkg/account"
	accountapi "github.com/simple-auth/simple-auth/pkg/account/api"
	"github.com/simple-auth/simple-auth/pkg/config"
	"github.com/simple-auth/simple-auth/pkg/notification"
	"github.com/simple-auth/simple-auth/pkg/tokengen"
)

type Config struct {
	AppConfig     app.AppConfig
	DbConfig      config.DbConfig
	JwtConfig     config.JwtConfig
	EmailConfig   config.EmailConfig
	AccountConfig config.AccountConfig
}

func main() {
	// Load .env file when present, ignore when missing
	godotenv.Load()

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := cfg.DbConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	repo := account.NewPgAccountRepository(pool)

	tokenService := tokengen.NewJwtTokenService(cfg.JwtConfig.Secret, cfg.JwtConfig.Issuer, cfg.JwtConfig.Audience)

	accountService := account.NewService(repo, tokenService,
		account.WithTokenExpiry(cfg.JwtConfig.ParseVerifyTokenExpiry(tokengen.DefaultExpiry)),
		account.WithOtpExpiry(cfg.AccountConfig.ParseOtpExpiry(account.DefaultOtpExpiry)),
		account.WithOtpDigits(cfg.AccountConfig.OtpDigits),
		account.WithDefaultRole(cfg.AccountConfig.DefaultRole),
	)

	emailNotifier, err := notification.NewEmailNotifier(cfg.EmailConfig.ToSMTPConfig())
	if err != nil {
		slog.Error("Failed creating email notifier", "host", cfg.EmailConfig.Host, "port", cfg.EmailConfig.Port, "err", err)
		os.Exit(-1)
	}
	notifier := notification.NewManager(emailNotifier)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.Secret), nil)

	handle := accountapi.NewHandle(accountService,
		accountapi.WithNotifier(notifier),
		accountapi.WithBaseURL(cfg.AccountConfig.BaseURL),
		accountapi.WithAuth(tokenAuth),
	)

	handle.Routes(server.R)

	server.Run()
}
