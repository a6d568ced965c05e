package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo is a Store backed by MongoDB, grounded on the original service's
// database.rs collection layout: one collection per entity, documents
// keyed by their uuid.UUID _id.
type Mongo struct {
	users    *mongo.Collection
	rooms    *mongo.Collection
	sessions *mongo.Collection
}

// NewMongo wraps db's users/rooms/sessions collections as a Store.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		users:    db.Collection("users"),
		rooms:    db.Collection("rooms"),
		sessions: db.Collection("sessions"),
	}
}

func (m *Mongo) CreateUser(ctx context.Context, u User) error {
	_, err := m.users.InsertOne(ctx, u)
	return err
}

func (m *Mongo) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (m *Mongo) CreateRoom(ctx context.Context, r Room) error {
	_, err := m.rooms.InsertOne(ctx, r)
	return err
}

func (m *Mongo) OpenRooms(ctx context.Context) ([]Room, error) {
	cur, err := m.rooms.Find(ctx, bson.M{"open": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (m *Mongo) CreateSession(ctx context.Context, s Session) error {
	_, err := m.sessions.InsertOne(ctx, s)
	return err
}

func (m *Mongo) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	var s Session
	err := m.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Session{}, ErrNotFound
	}
	return s, err
}

// SaveSession replaces the session document only if its stored version is
// still s.Version-1, implementing the compare-and-swap serialization
// spec.md §5 describes. A filter mismatch is reported as ErrVersionConflict
// unless the document is missing entirely, in which case ErrNotFound is
// more informative.
func (m *Mongo) SaveSession(ctx context.Context, s Session) error {
	filter := bson.M{"_id": s.ID, "version": s.Version - 1}
	result, err := m.sessions.ReplaceOne(ctx, filter, s)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, getErr := m.GetSession(ctx, s.ID); errors.Is(getErr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}
