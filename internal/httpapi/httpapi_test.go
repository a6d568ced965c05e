package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
	"github.com/Zitronenjoghurt/lemon-chess/internal/store"
)

func zapNop() *zap.Logger { return zap.NewNop() }

func testConfig() Config {
	return Config{
		JWTSigningKey: []byte("test-signing-key"),
		TokenTTL:      time.Hour,
		RatePerSecond: 100,
		RateBurst:     100,
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetPing(t *testing.T) {
	srv := NewServer(testConfig(), store.NewMemory(), zapNop())
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/ping", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ping: status = %d, want 200", rec.Code)
	}
}

func TestRegisterAndCreateRoom(t *testing.T) {
	srv := NewServer(testConfig(), store.NewMemory(), zapNop())

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/users/register", "", registerRequest{DisplayName: "ada"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /users/register: status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var reg registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if reg.Token == "" {
		t.Fatalf("register response should include a bearer token")
	}

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/rooms", reg.Token, roomRequest{Name: "<b>table</b> one"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /rooms: status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var room store.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &room); err != nil {
		t.Fatalf("decode room response: %v", err)
	}
	if room.Name != "table one" {
		t.Fatalf("room name should be sanitized, got %q", room.Name)
	}

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/rooms", reg.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /rooms: status = %d, want 200", rec.Code)
	}
	var rooms []store.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("decode rooms response: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("GET /rooms: got %d rooms, want 1", len(rooms))
	}
}

func TestRoomRequiresAuth(t *testing.T) {
	srv := NewServer(testConfig(), store.NewMemory(), zapNop())
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/rooms", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /rooms without a token: status = %d, want 401", rec.Code)
	}
}

func TestSessionMoveFlow(t *testing.T) {
	s := store.NewMemory()
	srv := NewServer(testConfig(), s, zapNop())

	white, black := uuid.New(), uuid.New()
	whiteToken, err := srv.issuer.Issue(white)
	if err != nil {
		t.Fatalf("Issue(white): %v", err)
	}

	state := engine.NewGameState()
	sessionID := uuid.New()
	session := store.Session{
		ID:       sessionID,
		Keys:     [2]uuid.UUID{white, black},
		Version:  1,
		Snapshot: state.Snapshot(),
	}
	if err := s.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	from, to := "e2", "e4"
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/sessions/"+sessionID.String()+"/move", whiteToken,
		moveRequest{From: &from, To: &to})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST move: status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var view sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode session view: %v", err)
	}
	if view.SideToMove != "b" {
		t.Fatalf("after e2e4, side to move should be black, got %q", view.SideToMove)
	}

	blackToken, err := srv.issuer.Issue(black)
	if err != nil {
		t.Fatalf("Issue(black): %v", err)
	}
	rec = doJSON(t, srv.Handler(), http.MethodPost, "/sessions/"+sessionID.String()+"/move", blackToken,
		moveRequest{From: &from, To: &to})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("replaying white's move as black should be rejected, got status %d", rec.Code)
	}
}
