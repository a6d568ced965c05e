// Package store persists users, rooms and game sessions. The engine itself
// is storage-agnostic (spec.md §5: "owned by an external store; the engine
// sees only the GameState it wraps"); this package is that external store.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

// User is a registered player. Registration in internal/httpapi leaves
// APIKeyHash empty: a user is identified by the signed bearer token issued
// at registration, which carries the user's ID.
type User struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	APIKeyHash  string    `bson:"api_key_hash" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Room is an open matchmaking pairing: a host waiting for an opponent to
// start a Session. It holds no GameState itself.
type Room struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	HostUserID uuid.UUID `bson:"host_user_id" json:"host_user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Open      bool      `bson:"open" json:"open"`
}

// Session is one in-progress or finished game. Keys[0]/Keys[1] identify
// which user plays White/Black; State is the engine's authoritative
// position, persisted through its Snapshot form.
type Session struct {
	ID        uuid.UUID          `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Keys      [2]uuid.UUID       `bson:"keys" json:"keys"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Version   int64              `bson:"version" json:"version"`
	Snapshot  engine.Snapshot    `bson:"snapshot" json:"snapshot"`
}

// State decodes the session's persisted snapshot back into a live
// GameState.
func (s Session) State() (*engine.GameState, error) {
	return engine.FromSnapshot(s.Snapshot)
}

// ErrNotFound is returned by Get* methods when no document matches.
var ErrNotFound = &storeError{"document not found"}

// ErrVersionConflict is returned by SaveSession when the caller's Version
// no longer matches the stored document: someone else saved a move first.
var ErrVersionConflict = &storeError{"session version conflict"}

type storeError struct{ message string }

func (e *storeError) Error() string { return e.message }

// Store is the persistence boundary every collaborator in internal/httpapi
// depends on, rather than on a concrete database client.
type Store interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id uuid.UUID) (User, error)

	CreateRoom(ctx context.Context, r Room) error
	OpenRooms(ctx context.Context) ([]Room, error)

	CreateSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id uuid.UUID) (Session, error)
	// SaveSession persists s only if the stored document's Version still
	// equals s.Version - 1 (s has already been incremented by the caller
	// after a successful move); it returns ErrVersionConflict otherwise.
	// This is the compare-and-swap serialization spec.md §5 calls for.
	SaveSession(ctx context.Context, s Session) error
}
