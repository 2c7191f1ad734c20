package negotiation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler wraps the negotiation service for HTTP.
type Handler struct {
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Service: NewService(db)}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingCustomer) ||
		errors.Is(err, ErrMissingSinger) ||
		errors.Is(err, ErrMissingNegotiation) ||
		errors.Is(err, ErrMissingLogType) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidQuoteStatus) ||
		errors.Is(err, ErrNegativeAmount)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case isValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Create handles POST /negotiations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNegotiationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	n, err := h.Service.CreateNegotiation(CreateNegotiationParams{
		CustomerID:    req.CustomerID,
		SingerID:      req.SingerID,
		Status:        req.Status,
		Title:         req.Title,
		Description:   req.Description,
		EventLocation: req.EventLocation,
		EventType:     req.EventType,
		EventDuration: req.EventDuration,
		Requirements:  req.Requirements,
		Notes:         req.Notes,
		AssignedTo:    req.AssignedTo,
		InitialAmount: req.InitialAmount,
		FinalAmount:   req.FinalAmount,
		EventDate:     req.EventDate,
		Deadline:      req.Deadline,
		IsUrgent:      req.IsUrgent,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// List handles GET /negotiations?status=&customerId=&singerId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f Filter
	f.Status = r.URL.Query().Get("status")
	if v := r.URL.Query().Get("customerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid customerId", http.StatusBadRequest)
			return
		}
		f.CustomerID = uint(id)
	}
	if v := r.URL.Query().Get("singerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid singerId", http.StatusBadRequest)
			return
		}
		f.SingerID = uint(id)
	}
	list, err := h.Service.ListNegotiations(f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// FindByID handles GET /negotiations/{id}
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	n, err := h.Service.FindNegotiationByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Update handles PUT /negotiations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req updateNegotiationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	n, err := h.Service.UpdateNegotiation(id, req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Delete handles DELETE /negotiations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Service.RemoveNegotiation(id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateQuote handles POST /quotes
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	q, err := h.Service.CreateQuote(CreateQuoteParams{
		NegotiationID:  req.NegotiationID,
		Amount:         req.Amount,
		Status:         req.Status,
		Description:    req.Description,
		ValidUntil:     req.ValidUntil,
		Items:          req.Items,
		Tax:            req.Tax,
		Discount:       req.Discount,
		DiscountReason: req.DiscountReason,
		Terms:          req.Terms,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
		IsFinal:        req.IsFinal,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// FindQuoteByID handles GET /quotes/{id}
func (h *Handler) FindQuoteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	q, err := h.Service.FindQuoteByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// UpdateQuote handles PUT /quotes/{id}
func (h *Handler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req updateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	q, err := h.Service.UpdateQuote(id, req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// DeleteQuote handles DELETE /quotes/{id}
func (h *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Service.RemoveQuote(id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListQuotes handles GET /negotiations/{id}/quotes
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	list, err := h.Service.ListQuotes(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListLogs handles GET /negotiations/{id}/logs
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	list, err := h.Service.ListLogs(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateLog handles POST /negotiations/{id}/logs
func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req createLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	entry, err := h.Service.CreateLog(CreateLogParams{
		NegotiationID: id,
		MatchID:       req.MatchID,
		Date:          req.Date,
		Type:          req.Type,
		Content:       req.Content,
		User:          req.User,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
