package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dg-does/Drag-Library/internal/model"
)

func insertLoanEvent(ctx context.Context, tx *sql.Tx, itemID string, e *model.LoanEvent) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO loans (item_id, kind, by_name, by_user_id, occurred_at) VALUES (?, ?, ?, ?, ?)`,
		itemID, e.Kind, e.By, e.ByUserID, e.OccurredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording loan event: %w", err)
	}
	e.ItemID = itemID
	e.ID, _ = result.LastInsertId()
	return nil
}

// GetItemHistory returns the loan events of an item, newest first.
func GetItemHistory(ctx context.Context, db *sql.DB, itemID string) ([]model.LoanEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.item_id, l.kind, l.by_name, l.by_user_id, l.occurred_at, i.name AS item_name
		 FROM loans l
		 JOIN items i ON i.id = l.item_id
		 WHERE l.item_id = ?
		 ORDER BY l.occurred_at DESC, l.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item history: %w", err)
	}
	defer rows.Close()

	var events []model.LoanEvent
	for rows.Next() {
		var e model.LoanEvent
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Kind, &e.By, &e.ByUserID, &e.OccurredAt, &e.ItemName); err != nil {
			return nil, fmt.Errorf("scanning loan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
