package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollection = "console_session"

// SessionStore persists the console session as two named documents in a
// dedicated collection. Mongo without a replica set has no multi-document
// transaction, so the two writes are sequential; a crash between them
// leaves partial state that the session manager purges on the next
// restore.
type SessionStore struct {
	coll     *mongo.Collection
	tokenKey string
	userKey  string
}

type sessionEntry struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewSessionStore creates a SessionStore over the console_session collection.
func NewSessionStore(db *mongo.Database, tokenKey, userKey string) *SessionStore {
	return &SessionStore{
		coll:     db.Collection(sessionCollection),
		tokenKey: tokenKey,
		userKey:  userKey,
	}
}

// Load returns whatever the two documents hold; a missing document is a
// zero value, not an error.
func (s *SessionStore) Load(ctx context.Context) (string, []byte, error) {
	token, err := s.get(ctx, s.tokenKey)
	if err != nil {
		return "", nil, fmt.Errorf("session load: %w", err)
	}
	userData, err := s.get(ctx, s.userKey)
	if err != nil {
		return "", nil, fmt.Errorf("session load: %w", err)
	}
	return string(token), userData, nil
}

// Save upserts both documents.
func (s *SessionStore) Save(ctx context.Context, token string, userData []byte) error {
	if err := s.put(ctx, s.tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := s.put(ctx, s.userKey, userData); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Clear removes both documents.
func (s *SessionStore) Clear(ctx context.Context) error {
	filter := bson.M{"_id": bson.M{"$in": []string{s.tokenKey, s.userKey}}}
	if _, err := s.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (s *SessionStore) get(ctx context.Context, key string) ([]byte, error) {
	var entry sessionEntry
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (s *SessionStore) put(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		sessionEntry{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	return err
}
