package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dg-does/Drag-Library/internal/lending"
	"github.com/dg-does/Drag-Library/internal/model"
)

var (
	alice = &model.Principal{UserID: 1, DisplayName: "Alice", Email: "alice@example.com"}
	bob   = &model.Principal{UserID: 2, DisplayName: "Bob", Email: "bob@example.com"}
	carol = &model.Principal{UserID: 3, Email: "carol@example.com"}
)

func fixedController(match lending.IdentityMatch, at time.Time) *lending.Controller {
	return &lending.Controller{Match: match, Now: func() time.Time { return at }}
}

func givenAvailableItem(t *testing.T, c *lending.Controller) model.Item {
	t.Helper()
	item, err := c.Create(alice, lending.NewItem{Name: "Drill", Owner: "Alice", Address: "123 Main"})
	require.NoError(t, err)
	item.ID = "item-1"
	return *item
}

func givenBorrowedItem(t *testing.T, c *lending.Controller, by *model.Principal) model.Item {
	t.Helper()
	item := givenAvailableItem(t, c)
	u, err := c.Borrow(by, &item)
	require.NoError(t, err)
	return item.Apply(u)
}

func TestCreate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := fixedController(lending.MatchUserID, now)

	item, err := c.Create(alice, lending.NewItem{Name: " Drill ", Owner: "Alice", Address: "123 Main"})

	require.NoError(t, err)
	assert.Equal(t, "Drill", item.Name)
	assert.Equal(t, "Alice", item.Owner)
	assert.Equal(t, "123 Main", item.Address)
	assert.True(t, item.Available)
	assert.Nil(t, item.BorrowedBy)
	assert.Nil(t, item.BorrowedAt)
	assert.Equal(t, now, item.CreatedAt)
	assert.Equal(t, alice.UserID, item.CreatedByUserID)
	assert.True(t, item.Consistent())
}

func TestCreateMissingField(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)

	cases := map[string]lending.NewItem{
		"no name":       {Owner: "Alice", Address: "123 Main"},
		"no owner":      {Name: "Drill", Address: "123 Main"},
		"no address":    {Name: "Drill", Owner: "Alice"},
		"blank name":    {Name: "   ", Owner: "Alice", Address: "123 Main"},
		"nothing given": {},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			item, err := c.Create(alice, in)

			assert.ErrorIs(t, err, lending.ErrInvalidInput)
			assert.Nil(t, item)
		})
	}
}

func TestCreateUnauthenticated(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)

	_, err := c.Create(nil, lending.NewItem{Name: "Drill", Owner: "Alice", Address: "123 Main"})
	assert.ErrorIs(t, err, lending.ErrUnauthenticated)

	_, err = c.Create(&model.Principal{UserID: 9}, lending.NewItem{Name: "Drill", Owner: "Alice", Address: "123 Main"})
	assert.ErrorIs(t, err, lending.ErrUnauthenticated, "a principal without any name is not signed in")
}

func TestBorrow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := fixedController(lending.MatchUserID, now)
	item := givenAvailableItem(t, c)

	u, err := c.Borrow(bob, &item)

	require.NoError(t, err)
	assert.False(t, u.Available)
	require.NotNil(t, u.BorrowedBy)
	assert.Equal(t, "Bob", *u.BorrowedBy)
	require.NotNil(t, u.BorrowedByUserID)
	assert.Equal(t, bob.UserID, *u.BorrowedByUserID)
	require.NotNil(t, u.BorrowedAt)
	assert.Equal(t, now, *u.BorrowedAt)
	require.NotNil(t, u.ExpectAvailable)
	assert.True(t, *u.ExpectAvailable)
	assert.True(t, item.Apply(u).Consistent())
}

func TestBorrowUsesEmailWithoutDisplayName(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenAvailableItem(t, c)

	u, err := c.Borrow(carol, &item)

	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", *u.BorrowedBy)
}

func TestBorrowAlreadyBorrowed(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenBorrowedItem(t, c, bob)

	for _, user := range []*model.Principal{alice, bob, carol} {
		u, err := c.Borrow(user, &item)

		assert.ErrorIs(t, err, lending.ErrItemUnavailable)
		assert.Equal(t, model.ItemUpdate{}, u, "a rejected borrow yields no update")
	}
}

func TestBorrowUnauthenticated(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenAvailableItem(t, c)

	u, err := c.Borrow(nil, &item)

	assert.ErrorIs(t, err, lending.ErrUnauthenticated)
	assert.Equal(t, model.ItemUpdate{}, u)
}

func TestReturn(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenBorrowedItem(t, c, bob)

	u, err := c.Return(bob, &item)

	require.NoError(t, err)
	assert.True(t, u.Available)
	assert.Nil(t, u.BorrowedBy)
	assert.Nil(t, u.BorrowedByUserID)
	assert.Nil(t, u.BorrowedAt)
	require.NotNil(t, u.ExpectAvailable)
	assert.False(t, *u.ExpectAvailable)
}

func TestReturnNotBorrower(t *testing.T) {
	for _, match := range []lending.IdentityMatch{lending.MatchUserID, lending.MatchDisplayName} {
		t.Run(match.String(), func(t *testing.T) {
			c := lending.NewController(match)
			item := givenBorrowedItem(t, c, bob)

			u, err := c.Return(alice, &item)

			assert.ErrorIs(t, err, lending.ErrNotBorrower)
			assert.Equal(t, model.ItemUpdate{}, u)
			assert.False(t, c.CanReturn(alice, &item))
			assert.True(t, c.CanReturn(bob, &item))
		})
	}
}

func TestReturnNotBorrowed(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenAvailableItem(t, c)

	_, err := c.Return(bob, &item)

	assert.ErrorIs(t, err, lending.ErrItemNotBorrowed)
	assert.False(t, c.CanReturn(bob, &item))
}

func TestReturnUnauthenticated(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenBorrowedItem(t, c, bob)

	_, err := c.Return(nil, &item)

	assert.ErrorIs(t, err, lending.ErrUnauthenticated)
	assert.False(t, c.CanReturn(nil, &item))
}

func TestReturnAfterRename(t *testing.T) {
	renamed := &model.Principal{UserID: bob.UserID, DisplayName: "Robert", Email: bob.Email}
	impostor := &model.Principal{UserID: 42, DisplayName: "Bob", Email: "other@example.com"}

	t.Run("user_id", func(t *testing.T) {
		c := lending.NewController(lending.MatchUserID)
		item := givenBorrowedItem(t, c, bob)

		_, err := c.Return(renamed, &item)
		assert.NoError(t, err, "the stable id still matches after a rename")

		_, err = c.Return(impostor, &item)
		assert.ErrorIs(t, err, lending.ErrNotBorrower, "the same display name under another id does not match")
	})

	t.Run("display_name", func(t *testing.T) {
		c := lending.NewController(lending.MatchDisplayName)
		item := givenBorrowedItem(t, c, bob)

		_, err := c.Return(renamed, &item)
		assert.ErrorIs(t, err, lending.ErrNotBorrower, "a rename breaks the display string match")

		_, err = c.Return(impostor, &item)
		assert.NoError(t, err, "the display string is all that is compared")
	})
}

func TestReturnLegacyRecordWithoutBorrowerID(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	item := givenBorrowedItem(t, c, bob)
	item.BorrowedByUserID = nil

	_, err := c.Return(bob, &item)
	assert.NoError(t, err)

	_, err = c.Return(alice, &item)
	assert.ErrorIs(t, err, lending.ErrNotBorrower)
}

func TestBorrowReturnRoundTrip(t *testing.T) {
	c := lending.NewController(lending.MatchUserID)
	initial := givenAvailableItem(t, c)

	borrowUpdate, err := c.Borrow(bob, &initial)
	require.NoError(t, err)
	borrowed := initial.Apply(borrowUpdate)

	returnUpdate, err := c.Return(bob, &borrowed)
	require.NoError(t, err)
	final := borrowed.Apply(returnUpdate)

	assert.False(t, borrowed.Available)
	assert.Equal(t, "Bob", *borrowed.BorrowedBy)
	assert.True(t, borrowed.Consistent())
	assert.Equal(t, initial, final)
}

func TestListNewestFirst(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)

	items := []model.Item{
		{ID: "a", CreatedAt: t1},
		{ID: "c", CreatedAt: t3, Available: true},
		{ID: "b", CreatedAt: t2},
	}

	got := lending.List(items)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "a", items[0].ID, "the input slice is not reordered")
}

func TestListKeepsOrderForEqualTimes(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []model.Item{{ID: "x", CreatedAt: at}, {ID: "y", CreatedAt: at}, {ID: "z", CreatedAt: at}}

	got := lending.List(items)

	assert.Equal(t, []string{"x", "y", "z"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestParseIdentityMatch(t *testing.T) {
	m, err := lending.ParseIdentityMatch("display_name")
	require.NoError(t, err)
	assert.Equal(t, lending.MatchDisplayName, m)

	m, err = lending.ParseIdentityMatch("")
	require.NoError(t, err)
	assert.Equal(t, lending.MatchUserID, m)

	_, err = lending.ParseIdentityMatch("email")
	assert.Error(t, err)
}
