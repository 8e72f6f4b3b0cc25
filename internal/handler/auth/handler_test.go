package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/seoyeon-oh/maum-diary/backend/internal/store/memory"
)

func setupRouter() (*chi.Mux, *memory.Store) {
	store := memory.NewStore()
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postJSON(r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRegisterThenLogin(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/register", map[string]string{"email": "a@x.com", "password": "p"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	var registered struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &registered); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	if registered.Status != "success" {
		t.Fatalf("unexpected register status: %q", registered.Status)
	}

	resp = postJSON(r, "/login", map[string]string{"email": "a@x.com", "password": "p"})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestLoginMissingFields(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/login", map[string]string{"email": "a@x.com"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupRouter()

	if resp := postJSON(r, "/register", map[string]string{"email": "a@x.com", "password": "p"}); resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.Code)
	}

	resp := postJSON(r, "/login", map[string]string{"email": "a@x.com", "password": "nope"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/login", map[string]string{"email": "ghost@x.com", "password": "p"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/register", map[string]string{"password": "p"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/register", map[string]string{"email": "not-an-email", "password": "p"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
