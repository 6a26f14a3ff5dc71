package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gopay/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gopay/internal/pkg/pkguid"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config pkgconfig.Config

	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager

	router     *pkgrouter.Router
	httpServer *http.Server

	// closed in reverse registration order
	closers []closer
}

// New builds the application from the config file at configPath. It exits
// the process when a required dependency cannot be initialized.
func New(configPath string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig(configPath)
	pkglog.InitLogging(app.config.GetString("log.level"))

	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}
