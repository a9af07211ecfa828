// Command stubapi runs the development stand-in for the document service
// backend. Seeded accounts: alice/alice123 (SYS_ADMIN), bob/bob123 (USER),
// carol/carol123 (COMPANY_ADMIN).
package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/docustore/admin-console/internal/config"
	"github.com/docustore/admin-console/internal/stubapi"
	"github.com/docustore/admin-console/pkg/logger"
)

func main() {
	cfg := config.LoadStub()
	log := logger.Init(cfg.LogLevel, false, os.Stderr)

	e := stubapi.New(stubapi.Options{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	})

	log.Info().Str("port", cfg.Port).Msg("stub document service listening")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
