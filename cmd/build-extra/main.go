package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pojntfx/buildextra/internal/app"
	"github.com/pojntfx/buildextra/po"
	. "github.com/pojntfx/go-gettext/pkg/i18n"
	"github.com/rs/zerolog/log"
)

func main() {
	cleanup, err := app.SetupTranslations(po.FS, func(domain, localeDir string) (func(string) string, error) {
		if err := InitI18n(domain, localeDir, slog.Default()); err != nil {
			return nil, err
		}

		return L, nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Could not set up translations, continuing untranslated")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := app.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	cancel()
	cleanup()
	os.Exit(code)
}
