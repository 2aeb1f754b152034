package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/salesorder/internal/config"
	"github.com/polkiloo/salesorder/internal/domain/repository"
)

// Module wires the submission journal. Without a DSN the journal discards records.
var Module = fx.Provide(newJournal)

type journalParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newJournal(p journalParams) (repository.SubmissionJournal, error) {
	journal, storage, err := open(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	if storage != nil {
		registerLifecycle(p.Lifecycle, storage)
	}
	return journal, nil
}

// OpenJournal connects the submission journal outside of fx. The returned func releases the pool.
func OpenJournal(ctx context.Context, dsn string, logger *slog.Logger) (repository.SubmissionJournal, func(), error) {
	journal, storage, err := open(ctx, dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	if storage == nil {
		return journal, func() {}, nil
	}
	return journal, storage.Close, nil
}

func open(ctx context.Context, dsn string, logger *slog.Logger) (repository.SubmissionJournal, *Storage, error) {
	if dsn == "" {
		logger.Info("submission journal disabled")
		return nopJournal{}, nil, nil
	}
	storage, err := New(ctx, dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.Journal(), storage, nil
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
