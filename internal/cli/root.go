package cli

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polkiloo/salesorder/internal/adapter/backoffice"
	"github.com/polkiloo/salesorder/internal/logger"
)

type rootOptions struct {
	backOffice string
	timeout    time.Duration
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "orderctl",
		Short:         "Compose and submit sales orders against the back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.backOffice, "backoffice", os.Getenv("BACKOFFICE_ADDRESS"), "back office base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "back office request timeout")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level written to stderr")

	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newSubmitCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logger.New(cmd.ErrOrStderr(), o.logLevel)
}

func (o *rootOptions) client(cmd *cobra.Command) (*backoffice.HTTPClient, error) {
	if o.backOffice == "" {
		return nil, errors.New("back office address is required: pass --backoffice or set BACKOFFICE_ADDRESS")
	}
	return backoffice.NewHTTPClient(o.backOffice, o.timeout, o.logger(cmd))
}
