package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/storage/postgres"
	"github.com/polkiloo/salesorder/internal/usecase"
)

func newSubmitCmd(opts *rootOptions) *cobra.Command {
	var (
		file     string
		database string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Compose a sales order from a YAML file and submit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := loadOrderFile(file)
			if err != nil {
				return err
			}
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			log := opts.logger(cmd)

			journal, closeJournal, err := postgres.OpenJournal(cmd.Context(), database, log)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer closeJournal()

			sessions := usecase.NewSessionUseCase(client, journal, log)
			draft := sessions.Start(cmd.Context())
			if err := fillDraft(draft, order); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDraft(draft.Snapshot()))
			if dryRun {
				return nil
			}

			snap, err := draft.Submit(cmd.Context())
			if err != nil {
				fmt.Fprintln(out, renderFailure(usecase.AlertMessage(err)))
				return fmt.Errorf("order not submitted: %w", err)
			}
			if snap.Submission.Status != model.SubmissionSucceeded {
				fmt.Fprintln(out, renderFailure(snap.Submission.Message))
				return errors.New("order rejected by the back office")
			}
			fmt.Fprintln(out, renderSuccess(snap.Submission.Message))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "order YAML file")
	cmd.Flags().StringVar(&database, "database", os.Getenv("DATABASE_URI"), "journal submissions to this PostgreSQL DSN")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render the draft without submitting")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func fillDraft(draft *usecase.DraftSession, order orderFile) error {
	if order.Customer != "" {
		if err := draft.SelectCustomer(order.Customer); err != nil {
			return fmt.Errorf("customer %s: %w", order.Customer, err)
		}
	}
	if order.DocDate != "" {
		if err := draft.SetDocDate(order.DocDate); err != nil {
			return err
		}
	}
	if order.DocNumber != "" {
		draft.SetDocNumber(order.DocNumber)
	}
	for _, l := range order.Lines {
		if hasLine(draft.Snapshot(), l.Code) {
			return fmt.Errorf("item %s listed twice", l.Code)
		}
		if _, err := draft.Toggle(l.Code); err != nil {
			return err
		}
		if l.Quantity != "" {
			if err := draft.UpdateQuantity(l.Code, l.Quantity); err != nil {
				return err
			}
		}
		if l.Price != nil {
			if err := draft.UpdatePrice(l.Code, *l.Price); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasLine(s usecase.Snapshot, code string) bool {
	return slices.ContainsFunc(s.Lines, func(l model.OrderLine) bool { return l.Code == code })
}
