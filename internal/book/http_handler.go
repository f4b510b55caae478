package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
	"libraryapi/internal/metrics"
	"libraryapi/internal/pagination"
)

type HTTPHandler struct {
	service *Service
	metrics *metrics.Metrics
}

func NewHTTPHandler(service *Service, m *metrics.Metrics) *HTTPHandler {
	return &HTTPHandler{service: service, metrics: m}
}

// Request is the wire DTO for create and update.
type Request struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
}

// Create handles POST /api/books.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if violations := httpx.ValidateStruct(req); violations != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, violations)
		return
	}

	created, err := h.service.Save(r.Context(), Book{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		if errors.Is(err, ErrISBNTaken) {
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.BooksCreated.Inc()
	httpx.JSONCreated(w, created)
}

// GetByID handles GET /api/books/{id}.
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONOK(w, b)
}

// Update handles PUT /api/books/{id}. Title and author are replaced; the
// stored isbn is untouched by this path.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if violations := httpx.ValidateStruct(req); violations != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, violations)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	b.Title = req.Title
	b.Author = req.Author
	updated, err := h.service.Update(r.Context(), b)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONOK(w, updated)
}

// Delete handles DELETE /api/books/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.service.Delete(r.Context(), b); err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONNoContent(w)
}

// Find handles GET /api/books?title=&author=&isbn=&page=&size=.
func (h *HTTPHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		Title:  query.Get("title"),
		Author: query.Get("author"),
		ISBN:   query.Get("isbn"),
	}

	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("size"))
	req := pagination.NewPageRequest(page, size)

	result, err := h.service.Find(r.Context(), filter, req)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONOK(w, result)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONErrors(w, http.StatusNotFound, ErrNotFound.Error())
		return 0, false
	}
	return id, true
}
