package model

import "time"

// Item is a lendable physical object.
type Item struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Owner            string     `json:"owner"`
	Address          string     `json:"address,omitempty"`
	Available        bool       `json:"available"`
	BorrowedBy       *string    `json:"borrowed_by"`
	BorrowedByUserID *int64     `json:"borrowed_by_user_id,omitempty"`
	BorrowedAt       *time.Time `json:"borrowed_at"`
	ImageMime        string     `json:"image_mime,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CreatedByUserID  int64      `json:"created_by_user_id"`
}

// Consistent reports whether the availability flag agrees with the borrower
// fields: available items carry no borrower, borrowed items carry both name
// and time.
func (i Item) Consistent() bool {
	if i.Available {
		return i.BorrowedBy == nil && i.BorrowedAt == nil && i.BorrowedByUserID == nil
	}
	return i.BorrowedBy != nil && i.BorrowedAt != nil
}

// Apply returns a copy of the item with the update's fields written over it.
func (i Item) Apply(u ItemUpdate) Item {
	i.Available = u.Available
	i.BorrowedBy = u.BorrowedBy
	i.BorrowedByUserID = u.BorrowedByUserID
	i.BorrowedAt = u.BorrowedAt
	return i
}

// WithoutAddress returns a copy suitable for anonymous viewers.
func (i Item) WithoutAddress() Item {
	i.Address = ""
	return i
}

// ItemUpdate is a partial update of the lending fields of one item. The
// borrower fields are always written together.
type ItemUpdate struct {
	Available        bool
	BorrowedBy       *string
	BorrowedByUserID *int64
	BorrowedAt       *time.Time

	// ExpectAvailable, when set, makes the write apply only if the stored
	// available flag still has this value.
	ExpectAvailable *bool
}

// Unconditional returns the update without its precondition.
func (u ItemUpdate) Unconditional() ItemUpdate {
	u.ExpectAvailable = nil
	return u
}

// Loan event kinds.
const (
	LoanBorrow = "borrow"
	LoanReturn = "return"
)

// LoanEvent records one borrow or return of an item.
type LoanEvent struct {
	ID         int64     `json:"id"`
	ItemID     string    `json:"item_id"`
	Kind       string    `json:"kind"`
	By         string    `json:"by"`
	ByUserID   *int64    `json:"by_user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`

	// Joined field (not always populated).
	ItemName string `json:"item_name,omitempty"`
}
