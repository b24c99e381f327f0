package lending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/store"
)

//go:generate mockgen -destination=mock_item_store_test.go -package=lending . ItemStore

// ItemStore is the persistence the service needs.
type ItemStore interface {
	InsertItem(ctx context.Context, item *model.Item, image []byte, imageMime string) error
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	UpdateItemFields(ctx context.Context, id string, u model.ItemUpdate, event *model.LoanEvent) error
	GetItemHistory(ctx context.Context, id string) ([]model.LoanEvent, error)
}

// Photo is an optional image attached when an item is created.
type Photo struct {
	Data []byte
	MIME string
}

// Service applies controller decisions to the item store. Every write is
// followed by a fresh read; the service never patches a cached copy.
type Service struct {
	store       ItemStore
	ctrl        *Controller
	conditional bool
}

// NewService returns a service. With conditional set, borrow and return
// writes only apply if the stored availability still matches what was read.
func NewService(s ItemStore, ctrl *Controller, conditional bool) *Service {
	return &Service{store: s, ctrl: ctrl, conditional: conditional}
}

// Controller returns the decision component, for surfaces that need to
// ask CanReturn.
func (s *Service) Controller() *Controller {
	return s.ctrl
}

// AddItem creates an available item recorded as created by user.
func (s *Service) AddItem(ctx context.Context, user *model.Principal, in NewItem, photo *Photo) (*model.Item, error) {
	item, err := s.ctrl.Create(user, in)
	if err != nil {
		return nil, err
	}

	var data []byte
	var mime string
	if photo != nil {
		data, mime = photo.Data, photo.MIME
	}
	if err := s.store.InsertItem(ctx, item, data, mime); err != nil {
		return nil, storeErr("adding item", err)
	}

	slog.Info("item added", "user", user.BorrowerName(), "item", item.Name, "id", item.ID)
	return s.GetItem(ctx, item.ID)
}

// ListItems returns every item, newest first.
func (s *Service) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, storeErr("listing items", err)
	}
	return List(items), nil
}

// GetItem returns one item.
func (s *Service) GetItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, storeErr("getting item", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// BorrowItem lends the item to user and returns the stored result.
func (s *Service) BorrowItem(ctx context.Context, user *model.Principal, id string) (*model.Item, error) {
	// Short-circuits the controller's own check to skip the store read.
	if !signedIn(user) {
		return nil, ErrUnauthenticated
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	u, err := s.ctrl.Borrow(user, item)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, id, u, model.LoanBorrow, user, ErrItemUnavailable); err != nil {
		return nil, err
	}

	slog.Info("item borrowed", "user", user.BorrowerName(), "item", item.Name, "id", id)
	return s.GetItem(ctx, id)
}

// ReturnItem makes the item available again and returns the stored result.
func (s *Service) ReturnItem(ctx context.Context, user *model.Principal, id string) (*model.Item, error) {
	// Short-circuits the controller's own check to skip the store read.
	if !signedIn(user) {
		return nil, ErrUnauthenticated
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	u, err := s.ctrl.Return(user, item)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, id, u, model.LoanReturn, user, ErrItemNotBorrowed); err != nil {
		return nil, err
	}

	slog.Info("item returned", "user", user.BorrowerName(), "item", item.Name, "id", id)
	return s.GetItem(ctx, id)
}

// History returns the borrow and return events of an item, newest first.
func (s *Service) History(ctx context.Context, id string) ([]model.LoanEvent, error) {
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.store.GetItemHistory(ctx, id)
	if err != nil {
		return nil, storeErr("getting item history", err)
	}
	return events, nil
}

func (s *Service) apply(ctx context.Context, id string, u model.ItemUpdate, kind string, user *model.Principal, stale error) error {
	if !s.conditional {
		u = u.Unconditional()
	}

	userID := user.UserID
	event := &model.LoanEvent{
		Kind:       kind,
		By:         user.BorrowerName(),
		ByUserID:   &userID,
		OccurredAt: s.ctrl.now(),
	}
	if u.BorrowedAt != nil {
		event.OccurredAt = *u.BorrowedAt
	}

	err := s.store.UpdateItemFields(ctx, id, u, event)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrStaleWrite):
		slog.Warn("lending write lost a race", "item", id, "kind", kind, "user", user.BorrowerName())
		return stale
	case errors.Is(err, store.ErrNotFound):
		return ErrItemNotFound
	default:
		return storeErr("updating item", err)
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
