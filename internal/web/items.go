package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/imaging"
	"github.com/dg-does/Drag-Library/internal/lending"
	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/store"
)

type itemCard struct {
	model.Item
	CanBorrow bool
	CanReturn bool
}

type itemForm struct {
	Name    string
	Owner   string
	Address string
}

type itemsPage struct {
	PageData
	Items []itemCard
	Form  itemForm
}

// ItemsPage handles GET /.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	s.renderItems(w, r, http.StatusOK, itemForm{}, "")
}

// renderItems shows the item list. Form values and an error message are
// kept so a failed write can be retried without retyping.
func (s *Server) renderItems(w http.ResponseWriter, r *http.Request, status int, form itemForm, message string) {
	user := currentUser(r.Context())
	page := &itemsPage{
		PageData: PageData{Title: "Drag Library", User: user, Error: message},
		Form:     form,
	}

	items, err := s.Service.ListItems(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		if page.Error == "" {
			page.Error = "Items could not be loaded. Try again later."
		}
		if status == http.StatusOK {
			status = http.StatusServiceUnavailable
		}
	}

	ctrl := s.Service.Controller()
	for i := range items {
		card := itemCard{Item: items[i]}
		if user == nil {
			card.Item = items[i].WithoutAddress()
		} else {
			card.CanBorrow = items[i].Available
			card.CanReturn = ctrl.CanReturn(user, &items[i])
		}
		page.Items = append(page.Items, card)
	}

	s.Templates.RenderStatus(w, status, "items.html", page)
}

// ItemCreateSubmit handles POST /items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	if user == nil {
		status, message := lendingMessage(lending.ErrUnauthenticated)
		s.renderItems(w, r, status, itemForm{}, message)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.renderItems(w, r, http.StatusBadRequest, itemForm{}, "The upload is too large.")
		return
	}

	form := itemForm{
		Name:    r.FormValue("name"),
		Owner:   r.FormValue("owner"),
		Address: r.FormValue("address"),
	}

	var photo *lending.Photo
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		photo, err = imaging.Process(file)
		if err != nil {
			s.renderItems(w, r, http.StatusBadRequest, form, "The photo must be a JPEG or PNG under 5 MB.")
			return
		}
	}

	_, err := s.Service.AddItem(r.Context(), user, lending.NewItem{
		Name: form.Name, Owner: form.Owner, Address: form.Address,
	}, photo)
	if err != nil {
		status, message := lendingMessage(err)
		s.renderItems(w, r, status, form, message)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ItemBorrowSubmit handles POST /items/{id}/borrow.
func (s *Server) ItemBorrowSubmit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Service.BorrowItem(r.Context(), currentUser(r.Context()), r.PathValue("id")); err != nil {
		status, message := lendingMessage(err)
		s.renderItems(w, r, status, itemForm{}, message)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ItemReturnSubmit handles POST /items/{id}/return.
func (s *Server) ItemReturnSubmit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Service.ReturnItem(r.Context(), currentUser(r.Context()), r.PathValue("id")); err != nil {
		status, message := lendingMessage(err)
		s.renderItems(w, r, status, itemForm{}, message)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ItemImageGet handles GET /items/{id}/image.
func (s *Server) ItemImageGet(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := store.GetItemImage(r.Context(), s.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

// lendingMessage turns a lending failure into a status and a banner.
func lendingMessage(err error) (int, string) {
	switch {
	case errors.Is(err, lending.ErrUnauthenticated):
		return http.StatusUnauthorized, "Sign in first."
	case errors.Is(err, lending.ErrInvalidInput):
		return http.StatusBadRequest, "Every field is required."
	case errors.Is(err, lending.ErrItemUnavailable):
		return http.StatusConflict, "Someone else has already borrowed this item."
	case errors.Is(err, lending.ErrItemNotBorrowed):
		return http.StatusConflict, "This item has already been returned."
	case errors.Is(err, lending.ErrNotBorrower):
		return http.StatusForbidden, "Only the borrower can return this item."
	case errors.Is(err, lending.ErrItemNotFound):
		return http.StatusNotFound, "This item no longer exists."
	default:
		slog.Error("lending write failed", "error", err)
		return http.StatusServiceUnavailable, "Saving failed. Try again."
	}
}
