package loan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/httpx"
	"libraryapi/internal/metrics"
	"libraryapi/internal/pagination"
)

type HTTPHandler struct {
	service *Service
	books   *book.Service
	metrics *metrics.Metrics
}

func NewHTTPHandler(service *Service, books *book.Service, m *metrics.Metrics) *HTTPHandler {
	return &HTTPHandler{service: service, books: books, metrics: m}
}

// CreateRequest is the wire DTO for creating a loan. The book is referenced
// by isbn and resolved before the loan is saved.
type CreateRequest struct {
	ISBN     string `json:"isbn" validate:"required"`
	Customer string `json:"customer" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// ReturnRequest is the wire DTO for marking a loan returned.
type ReturnRequest struct {
	Returned bool `json:"returned"`
}

// Create handles POST /api/loans.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if violations := httpx.ValidateStruct(req); violations != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, violations)
		return
	}

	b, err := h.books.GetByISBN(r.Context(), req.ISBN)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONErrors(w, http.StatusBadRequest, "Book not found for passed isbn")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := h.service.Save(r.Context(), Loan{
		BookID:        b.ID,
		Customer:      req.Customer,
		CustomerEmail: req.Email,
		LoanDate:      time.Now(),
	})
	if err != nil {
		if errors.Is(err, ErrBookAlreadyLoaned) {
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.LoansCreated.Inc()
	httpx.JSONCreated(w, WithBook{Loan: created, Book: b})
}

// Return handles PATCH /api/loans/{id}.
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONErrors(w, http.StatusNotFound, ErrNotFound.Error())
		return
	}

	var req ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	l.Returned = &req.Returned
	updated, err := h.service.Update(r.Context(), l)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.Returned {
		h.metrics.LoansReturned.Inc()
	}
	httpx.JSONOK(w, updated)
}

// Find handles GET /api/loans?isbn=&customer=&page=&size=.
func (h *HTTPHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		ISBN:     query.Get("isbn"),
		Customer: query.Get("customer"),
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

// ListByBook handles GET /api/books/{id}/loans?page=&size=.
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONErrors(w, http.StatusNotFound, book.ErrNotFound.Error())
		return
	}

	b, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, book.ErrNotFound.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	req := pagination.NewPageRequest(page, size)

	result, err := h.service.GetLoansByBook(r.Context(), b.ID, req)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONOK(w, result)
}
