// Package main runs the auth service without a database using the
// in-memory account repository. This is useful for:
// - Quick development and testing
// - Demo/prototype environments
// - Learning the API without database setup
//
// Note: All data is lost when the server stops. For production, use
// cmd/authd with PostgreSQL.
package main

import (
	"log/slog"
	"os"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tendant/chi-demo/app"

	"github.com/simple-auth/simple-auth/pkg/account"
	accountapi "github.com/simple-auth/simple-auth/pkg/account/api"
	"github.com/simple-auth/simple-auth/pkg/notification"
	"github.com/simple-auth/simple-auth/pkg/tokengen"
)

const (
	jwtSecret = "inmem-dev-secret-change-in-production"
	baseURL   = "http://localhost:4000"
	issuer    = "inmem-auth"
)

// logNotifier prints notices to the log instead of delivering them, so
// verification links and reset codes show up in the console.
type logNotifier struct{}

func (logNotifier) Send(noticeType notification.NoticeType, data notification.NotificationData, _ notification.NoticeTemplate) error {
	slog.Info("Notice", "type", noticeType, "to", data.To, "data", data.Data)
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory auth service (no database required)")

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	repo := account.NewInMemoryAccountRepository()
	tokenService := tokengen.NewJwtTokenService(jwtSecret, issuer, issuer)
	accountService := account.NewService(repo, tokenService)

	notifier := notification.NewManager(logNotifier{})

	tokenAuth := jwtauth.New("HS256", []byte(jwtSecret), nil)

	handle := accountapi.NewHandle(accountService,
		accountapi.WithNotifier(notifier),
		accountapi.WithBaseURL(baseURL),
		accountapi.WithAuth(tokenAuth),
	)

	handle.Routes(server.R)

	server.Run()
}
