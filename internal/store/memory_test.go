package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

func TestMemoryUserRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u := User{ID: uuid.New(), DisplayName: "ada", CreatedAt: time.Now()}
	if err := m.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: unexpected error: %v", err)
	}

	got, err := m.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: unexpected error: %v", err)
	}
	if got.DisplayName != u.DisplayName {
		t.Fatalf("GetUser: got display name %q, want %q", got.DisplayName, u.DisplayName)
	}

	if _, err := m.GetUser(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser on unknown id: got %v, want ErrNotFound", err)
	}
}

func TestMemoryOpenRoomsFiltersClosed(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	open := Room{ID: uuid.New(), Name: "table one", Open: true}
	closed := Room{ID: uuid.New(), Name: "table two", Open: false}
	if err := m.CreateRoom(ctx, open); err != nil {
		t.Fatalf("CreateRoom(open): %v", err)
	}
	if err := m.CreateRoom(ctx, closed); err != nil {
		t.Fatalf("CreateRoom(closed): %v", err)
	}

	rooms, err := m.OpenRooms(ctx)
	if err != nil {
		t.Fatalf("OpenRooms: unexpected error: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != open.ID {
		t.Fatalf("OpenRooms: got %v, want only %v", rooms, open)
	}
}

func TestMemorySaveSessionCASConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	state := engine.NewGameState()
	id := uuid.New()
	session := Session{ID: id, Version: 1, Snapshot: state.Snapshot()}
	if err := m.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession: unexpected error: %v", err)
	}

	state.MakeMove(engine.E2, engine.E4)
	next := session
	next.Version = 2
	next.Snapshot = state.Snapshot()
	if err := m.SaveSession(ctx, next); err != nil {
		t.Fatalf("SaveSession (first writer): unexpected error: %v", err)
	}

	stale := session
	stale.Version = 2
	if err := m.SaveSession(ctx, stale); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("SaveSession (stale writer): got %v, want ErrVersionConflict", err)
	}

	got, err := m.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession: unexpected error: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("GetSession: version = %d, want 2 (the winning writer's)", got.Version)
	}
}
