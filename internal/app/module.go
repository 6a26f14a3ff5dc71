package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gopay/internal/payments"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.payments.enabled") {
		slog.Warn("payments module is disabled, only health endpoints are served")
		return
	}

	closeFn, err := payments.New(payments.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
		ID:        a.uuid,
	})
	if err != nil {
		slog.Error("failed to init module payments", "error", err)
		os.Exit(1)
	}

	a.addCloser("Payments", closeFn)
}
