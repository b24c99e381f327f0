package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/imaging"
	"github.com/dg-does/Drag-Library/internal/lending"
	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/store"
)

// ItemsHandler handles item and lending endpoints.
type ItemsHandler struct {
	DB      *sql.DB
	Service *lending.Service
}

type createItemRequest struct {
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Address string `json:"address"`
}

// itemResponse is an item as one caller sees it.
type itemResponse struct {
	model.Item
	CanReturn bool `json:"can_return"`
}

func (h *ItemsHandler) view(user *model.Principal, item *model.Item) itemResponse {
	resp := itemResponse{Item: *item}
	if user == nil {
		resp.Item = item.WithoutAddress()
		return resp
	}
	resp.CanReturn = h.Service.Controller().CanReturn(user, item)
	return resp
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItems(r.Context())
	if err != nil {
		lendingError(w, err)
		return
	}

	user := currentUser(r.Context())
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, h.view(user, &items[i]))
	}
	jsonResponse(w, http.StatusOK, out)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		lendingError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, h.view(currentUser(r.Context()), item))
}

// Create handles POST /api/items. The body is either JSON or a multipart
// form with name, owner, address and an optional image file.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Reject anonymous callers before reading any upload.
	user := currentUser(r.Context())
	if user == nil {
		lendingError(w, lending.ErrUnauthenticated)
		return
	}

	var in lending.NewItem
	var photo *lending.Photo

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		var ok bool
		in, photo, ok = readItemForm(w, r)
		if !ok {
			return
		}
	} else {
		var req createItemRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		in = lending.NewItem{Name: req.Name, Owner: req.Owner, Address: req.Address}
	}

	item, err := h.Service.AddItem(r.Context(), user, in, photo)
	if err != nil {
		lendingError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, h.view(user, item))
}

func readItemForm(w http.ResponseWriter, r *http.Request) (lending.NewItem, *lending.Photo, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return lending.NewItem{}, nil, false
	}

	in := lending.NewItem{
		Name:    r.FormValue("name"),
		Owner:   r.FormValue("owner"),
		Address: r.FormValue("address"),
	}

	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, true
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image upload")
		return lending.NewItem{}, nil, false
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		slog.Warn("rejected item photo", "error", err)
		jsonError(w, http.StatusBadRequest, err.Error())
		return lending.NewItem{}, nil, false
	}
	return in, photo, true
}

// Borrow handles POST /api/items/{id}/borrow.
func (h *ItemsHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	item, err := h.Service.BorrowItem(r.Context(), user, r.PathValue("id"))
	if err != nil {
		lendingError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, h.view(user, item))
}

// Return handles POST /api/items/{id}/return.
func (h *ItemsHandler) Return(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	item, err := h.Service.ReturnItem(r.Context(), user, r.PathValue("id"))
	if err != nil {
		lendingError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, h.view(user, item))
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// GetHistory handles GET /api/items/{id}/history.
func (h *ItemsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.History(r.Context(), r.PathValue("id"))
	if err != nil {
		lendingError(w, err)
		return
	}
	if history == nil {
		history = []model.LoanEvent{}
	}
	jsonResponse(w, http.StatusOK, history)
}
