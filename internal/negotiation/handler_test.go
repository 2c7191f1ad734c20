package negotiation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/encorebooking/api-agency/internal/negotiationlog"
	"github.com/gorilla/mux"
)

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	db := setupTestDB(t)
	h := NewHandler(db)
	r := mux.NewRouter()
	r.HandleFunc("/negotiations", h.Create).Methods("POST")
	r.HandleFunc("/negotiations", h.List).Methods("GET")
	r.HandleFunc("/negotiations/{id}", h.FindByID).Methods("GET")
	r.HandleFunc("/negotiations/{id}", h.Update).Methods("PUT")
	r.HandleFunc("/negotiations/{id}", h.Delete).Methods("DELETE")
	r.HandleFunc("/quotes", h.CreateQuote).Methods("POST")
	r.HandleFunc("/quotes/{id}", h.UpdateQuote).Methods("PUT")
	r.HandleFunc("/negotiations/{id}/quotes", h.ListQuotes).Methods("GET")
	r.HandleFunc("/negotiations/{id}/logs", h.ListLogs).Methods("GET")
	r.HandleFunc("/negotiations/{id}/logs", h.CreateLog).Methods("POST")
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNegotiationEndpoints(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/negotiations",
		`{"customerId":1,"singerId":2,"title":"corporate gala","initialAmount":1200000}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var created Negotiation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}
	id := strconv.Itoa(int(created.ID))

	w = doJSON(t, r, http.MethodGet, "/negotiations/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/negotiations/"+id,
		`{"status":"in-progress","updatedBy":"kim"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var updated Negotiation
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Status != StatusInProgress {
		t.Fatalf("expected in-progress, got %q", updated.Status)
	}

	w = doJSON(t, r, http.MethodGet, "/negotiations/"+id+"/logs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var logs []negotiationlog.NegotiationLog
	_ = json.Unmarshal(w.Body.Bytes(), &logs)
	if len(logs) != 1 || logs[0].Type != negotiationlog.TypeStatusChange {
		t.Fatalf("expected one status_change entry, got %+v", logs)
	}
	if logs[0].User != "kim" {
		t.Fatalf("expected actor kim, got %q", logs[0].User)
	}

	w = doJSON(t, r, http.MethodPut, "/negotiations/"+id, `{"status":"open"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/negotiations/"+id, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/negotiations/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestQuoteEndpoints(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/negotiations", `{"customerId":3,"singerId":4}`)
	var n Negotiation
	_ = json.Unmarshal(w.Body.Bytes(), &n)
	id := strconv.Itoa(int(n.ID))

	w = doJSON(t, r, http.MethodPost, "/quotes",
		`{"negotiationId":`+id+`,"amount":1000000,"createdBy":"park","items":[{"name":"performance","quantity":2,"unitPrice":400000}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	qid := strconv.Itoa(int(created["quoteId"].(float64)))

	w = doJSON(t, r, http.MethodPut, "/quotes/"+qid,
		`{"status":"final","amount":950000,"updatedBy":"park"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/negotiations/"+id, "")
	var detail Negotiation
	_ = json.Unmarshal(w.Body.Bytes(), &detail)
	if detail.Status != StatusFinalQuote {
		t.Fatalf("cascade missing, got %q", detail.Status)
	}
	if len(detail.Quotes) != 1 {
		t.Fatalf("expected 1 preloaded quote, got %d", len(detail.Quotes))
	}
	// quote_created + quote_status_change + negotiation status_change
	if len(detail.Logs) != 3 {
		t.Fatalf("expected 3 preloaded log entries, got %d", len(detail.Logs))
	}

	w = doJSON(t, r, http.MethodPost, "/quotes", `{"negotiationId":99999,"amount":100}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown negotiation, got %d", w.Code)
	}
}

func TestCreateLogEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/negotiations", `{"customerId":5,"singerId":6}`)
	var n Negotiation
	_ = json.Unmarshal(w.Body.Bytes(), &n)
	id := strconv.Itoa(int(n.ID))

	w = doJSON(t, r, http.MethodPost, "/negotiations/"+id+"/logs",
		`{"type":"phone_call","content":"left a voicemail"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var entry negotiationlog.NegotiationLog
	_ = json.Unmarshal(w.Body.Bytes(), &entry)
	if entry.User != negotiationlog.SystemUser {
		t.Fatalf("expected system default actor, got %q", entry.User)
	}

	w = doJSON(t, r, http.MethodPost, "/negotiations/"+id+"/logs", `{"content":"no type"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing type, got %d", w.Code)
	}
}
