package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dg-does/Drag-Library/internal/model"
)

const itemColumns = `id, name, owner, address, available, borrowed_by, borrowed_by_user_id,
        borrowed_at, image_mime, created_at, created_by_user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var borrowedBy, imageMime sql.NullString
	var borrowedByUserID sql.NullInt64
	err := row.Scan(&item.ID, &item.Name, &item.Owner, &item.Address, &item.Available,
		&borrowedBy, &borrowedByUserID, &item.BorrowedAt, &imageMime,
		&item.CreatedAt, &item.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	if borrowedBy.Valid {
		item.BorrowedBy = &borrowedBy.String
	}
	if borrowedByUserID.Valid {
		item.BorrowedByUserID = &borrowedByUserID.Int64
	}
	item.ImageMime = imageMime.String
	return item, nil
}

// InsertItem stores a new item and assigns its ID. The image is optional.
func InsertItem(ctx context.Context, db *sql.DB, item *model.Item, image []byte, imageMime string) error {
	item.ID = uuid.NewString()

	var mime sql.NullString
	if len(image) > 0 {
		mime = sql.NullString{String: imageMime, Valid: true}
	} else {
		image = nil
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, name, owner, address, available, borrowed_by, borrowed_by_user_id,
		                    borrowed_at, image, image_mime, created_at, created_by_user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Owner, item.Address, item.Available, item.BorrowedBy,
		item.BorrowedByUserID, item.BorrowedAt, image, mime, item.CreatedAt.UTC(), item.CreatedByUserID,
	)
	if err != nil {
		item.ID = ""
		return fmt.Errorf("creating item: %w", err)
	}
	item.ImageMime = mime.String
	return nil
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, newest first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItemFields writes the lending fields of one item and records the
// loan event in the same transaction. No other column is touched. When the
// update carries an ExpectAvailable precondition and the stored flag no
// longer matches, nothing is written and ErrStaleWrite is returned.
func UpdateItemFields(ctx context.Context, db *sql.DB, id string, u model.ItemUpdate, event *model.LoanEvent) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE items SET available = ?, borrowed_by = ?, borrowed_by_user_id = ?, borrowed_at = ?
	          WHERE id = ?`
	args := []any{u.Available, u.BorrowedBy, u.BorrowedByUserID, utcPtr(u.BorrowedAt), id}
	if u.ExpectAvailable != nil {
		query += ` AND available = ?`
		args = append(args, *u.ExpectAvailable)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		if u.ExpectAvailable != nil {
			return ErrStaleWrite
		}
		return ErrNotFound
	}

	if event != nil {
		if err := insertLoanEvent(ctx, tx, id, event); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item update: %w", err)
	}
	return nil
}

// GetItemImage returns an item's image data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

// ItemStore binds the item functions to one database handle.
type ItemStore struct {
	DB *sql.DB
}

func (s *ItemStore) InsertItem(ctx context.Context, item *model.Item, image []byte, imageMime string) error {
	return InsertItem(ctx, s.DB, item, image, imageMime)
}

func (s *ItemStore) GetItem(ctx context.Context, id string) (*model.Item, error) {
	return GetItem(ctx, s.DB, id)
}

func (s *ItemStore) ListItems(ctx context.Context) ([]model.Item, error) {
	return ListItems(ctx, s.DB)
}

func (s *ItemStore) UpdateItemFields(ctx context.Context, id string, u model.ItemUpdate, event *model.LoanEvent) error {
	return UpdateItemFields(ctx, s.DB, id, u, event)
}

func (s *ItemStore) GetItemHistory(ctx context.Context, id string) ([]model.LoanEvent, error) {
	return GetItemHistory(ctx, s.DB, id)
}
