// Package session publishes sign-in state changes to interested listeners.
package session

import (
	"sync"

	"github.com/dg-does/Drag-Library/internal/model"
)

// ChangeKind names what happened to a session.
type ChangeKind string

const (
	SignedIn       ChangeKind = "signed_in"
	SignedOut      ChangeKind = "signed_out"
	ProfileUpdated ChangeKind = "profile_updated"
)

// Change is one auth state change. User is the principal after the change;
// for SignedOut it is the principal that signed out.
type Change struct {
	Kind ChangeKind
	User *model.Principal
}

// Listener receives changes.
type Listener func(Change)

// Notifier fans changes out to subscribed listeners. The zero value is ready
// to use.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is harmless.
func (n *Notifier) Subscribe(fn Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, subscription{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.listeners {
			if s.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every listener with c, in registration order, on the
// calling goroutine. Listeners may subscribe or unsubscribe while being
// notified; such changes apply from the next Notify.
func (n *Notifier) Notify(c Change) {
	if n == nil {
		return
	}
	n.mu.Lock()
	listeners := make([]Listener, len(n.listeners))
	for i, s := range n.listeners {
		listeners[i] = s.fn
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
}
