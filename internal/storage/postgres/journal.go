package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

type journalRepository struct {
	storage *Storage
}

type journalRow struct {
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Record stores an order accepted by the back office.
func (r *journalRepository) Record(ctx context.Context, order model.SubmittedOrder) error {
	rows := make([]journalRow, 0, len(order.Rows))
	for _, row := range order.Rows {
		rows = append(rows, journalRow{ItemCode: row.ItemCode, ItemName: row.ItemName, Price: row.Price, Quantity: row.Quantity})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode journal rows: %w", err)
	}

	submittedAt := order.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	const insert = `INSERT INTO submitted_orders (card_code, card_name, doc_date, doc_total, rows, doc_entry, doc_num, submitted_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                    RETURNING id`

	var id int64
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, insert,
			order.CardCode,
			order.CardName,
			order.DocDate,
			order.DocTotal,
			payload,
			nullableID(order.DocEntry),
			nullableID(order.DocNum),
			submittedAt,
		).Scan(&id)
	})
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}

	r.storage.logger.Debug("submission journaled", slog.Int64("id", id), slog.String("card_code", order.CardCode))
	return nil
}

// nullableID maps an absent back office identifier to NULL.
func nullableID(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

// Recent lists the newest journal records first.
func (r *journalRepository) Recent(ctx context.Context, limit int) ([]model.SubmittedOrder, error) {
	const query = `SELECT id, card_code, card_name, to_char(doc_date, 'YYYY-MM-DD'), doc_total, rows, doc_entry, doc_num, submitted_at
                   FROM submitted_orders ORDER BY submitted_at DESC, id DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SubmittedOrder
	for rows.Next() {
		var (
			o        model.SubmittedOrder
			payload  []byte
			docEntry *int64
			docNum   *int64
		)
		if err := rows.Scan(&o.ID, &o.CardCode, &o.CardName, &o.DocDate, &o.DocTotal, &payload, &docEntry, &docNum, &o.SubmittedAt); err != nil {
			return nil, err
		}
		if docEntry != nil {
			o.DocEntry = *docEntry
		}
		if docNum != nil {
			o.DocNum = *docNum
		}
		var stored []journalRow
		if err := json.Unmarshal(payload, &stored); err != nil {
			return nil, fmt.Errorf("decode journal rows: %w", err)
		}
		for _, row := range stored {
			o.Rows = append(o.Rows, model.SalesOrderRow{ItemCode: row.ItemCode, ItemName: row.ItemName, Price: row.Price, Quantity: row.Quantity})
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, model.SubmittedOrder) error { return nil }

func (nopJournal) Recent(context.Context, int) ([]model.SubmittedOrder, error) { return nil, nil }
