// Package lending implements the item lending lifecycle: an item is created
// available, may be borrowed by any signed-in user, and may be returned only
// by its borrower.
package lending

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dg-does/Drag-Library/internal/model"
)

// IdentityMatch selects how a returning user is matched against the borrower.
type IdentityMatch int

const (
	// MatchUserID compares the stable user ID recorded at borrow time.
	// Records without a borrower ID fall back to MatchDisplayName.
	MatchUserID IdentityMatch = iota
	// MatchDisplayName compares the recorded display string with the
	// caller's display name or email. A rename breaks the match.
	MatchDisplayName
)

// ParseIdentityMatch parses "user_id" or "display_name".
func ParseIdentityMatch(s string) (IdentityMatch, error) {
	switch s {
	case "user_id", "":
		return MatchUserID, nil
	case "display_name":
		return MatchDisplayName, nil
	default:
		return 0, fmt.Errorf("unknown identity match %q (want user_id or display_name)", s)
	}
}

func (m IdentityMatch) String() string {
	if m == MatchDisplayName {
		return "display_name"
	}
	return "user_id"
}

// NewItem holds the creation fields of an item.
type NewItem struct {
	Name    string
	Owner   string
	Address string
}

// Controller decides lending transitions. It holds no item state; every
// decision is made from the snapshot it is handed.
type Controller struct {
	Match IdentityMatch
	Now   func() time.Time
}

// NewController returns a controller using the wall clock.
func NewController(match IdentityMatch) *Controller {
	return &Controller{Match: match, Now: time.Now}
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}

// Create builds the record for a new available item.
func (c *Controller) Create(user *model.Principal, in NewItem) (*model.Item, error) {
	if !signedIn(user) {
		return nil, ErrUnauthenticated
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Owner = strings.TrimSpace(in.Owner)
	in.Address = strings.TrimSpace(in.Address)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Owner == "" {
		missing = append(missing, "owner")
	}
	if in.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", ErrInvalidInput, strings.Join(missing, ", "))
	}

	return &model.Item{
		Name:            in.Name,
		Owner:           in.Owner,
		Address:         in.Address,
		Available:       true,
		CreatedAt:       c.now(),
		CreatedByUserID: user.UserID,
	}, nil
}

// Borrow returns the update that lends an available item to user.
func (c *Controller) Borrow(user *model.Principal, item *model.Item) (model.ItemUpdate, error) {
	if !signedIn(user) {
		return model.ItemUpdate{}, ErrUnauthenticated
	}
	if !item.Available {
		return model.ItemUpdate{}, ErrItemUnavailable
	}

	name := user.BorrowerName()
	userID := user.UserID
	at := c.now()
	expect := true
	return model.ItemUpdate{
		Available:        false,
		BorrowedBy:       &name,
		BorrowedByUserID: &userID,
		BorrowedAt:       &at,
		ExpectAvailable:  &expect,
	}, nil
}

// Return returns the update that makes a borrowed item available again.
// Only the borrower may return it.
func (c *Controller) Return(user *model.Principal, item *model.Item) (model.ItemUpdate, error) {
	if !signedIn(user) {
		return model.ItemUpdate{}, ErrUnauthenticated
	}
	if item.Available {
		return model.ItemUpdate{}, ErrItemNotBorrowed
	}
	if !c.isBorrower(user, item) {
		return model.ItemUpdate{}, ErrNotBorrower
	}

	expect := false
	return model.ItemUpdate{Available: true, ExpectAvailable: &expect}, nil
}

// CanReturn reports whether user may return item right now.
func (c *Controller) CanReturn(user *model.Principal, item *model.Item) bool {
	return signedIn(user) && !item.Available && c.isBorrower(user, item)
}

func (c *Controller) isBorrower(user *model.Principal, item *model.Item) bool {
	if c.Match == MatchUserID && item.BorrowedByUserID != nil {
		return *item.BorrowedByUserID == user.UserID
	}
	return item.BorrowedBy != nil && *item.BorrowedBy == user.BorrowerName()
}

// List orders items newest first. Items with equal creation times keep
// their incoming order.
func List(items []model.Item) []model.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b model.Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func signedIn(user *model.Principal) bool {
	return user != nil && user.BorrowerName() != ""
}
