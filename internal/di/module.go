package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/salesorder/internal/adapter/backoffice"
	"github.com/polkiloo/salesorder/internal/app"
	"github.com/polkiloo/salesorder/internal/config"
	"github.com/polkiloo/salesorder/internal/logger"
	"github.com/polkiloo/salesorder/internal/server/http/handlers"
	"github.com/polkiloo/salesorder/internal/server/http/router"
	"github.com/polkiloo/salesorder/internal/storage/postgres"
	"github.com/polkiloo/salesorder/internal/usecase"
)

// Module assembles the sales order service. opts are appended last, so tests can replace providers.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		backoffice.Module,
		usecase.Module,
		fx.Provide(func(f *app.DeskFacade) handlers.DeskFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
