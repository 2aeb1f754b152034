package backoffice

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/salesorder/internal/config"
	"github.com/polkiloo/salesorder/internal/domain/repository"
)

// Module exposes the back office client to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (repository.BackOffice, error) {
	client, err := NewHTTPClient(p.Config.BackOfficeAddress, p.Config.RequestTimeout, p.Logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
