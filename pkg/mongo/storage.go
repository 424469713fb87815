package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type optionsDocument struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// Storage keeps cookie attribute documents in a collection keyed by _id.
// It satisfies cookie.Storage. Expired documents are hidden from Get and
// removed by the TTL index created in EnsureIndexes.
type Storage struct {
	coll      *mongo.Collection
	opTimeout time.Duration
	now       func() time.Time
}

// NewStorage uses the collection named by cfg.Collection in db.
func NewStorage(db *mongo.Database, cfg Config) *Storage {
	name := cfg.Collection
	if name == "" {
		name = "cookie_options"
	}
	return &Storage{
		coll:      db.Collection(name),
		opTimeout: cfg.OpTimeout,
		now:       time.Now,
	}
}

// EnsureIndexes creates the TTL index on expires_at.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *Storage) Get(key string) ([]byte, error) {
	ctx, cancel := s.context()
	defer cancel()

	filter := bson.M{
		"_id": key,
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": s.now()}},
		},
	}

	var doc optionsDocument
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return doc.Value, nil
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	ctx, cancel := s.context()
	defer cancel()

	now := s.now()
	doc := optionsDocument{Key: key, Value: val, UpdatedAt: now}
	if exp > 0 {
		t := now.Add(exp)
		doc.ExpiresAt = &t
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *Storage) Delete(key string) error {
	ctx, cancel := s.context()
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// DeletePrefix removes every document whose key starts with prefix.
func (s *Storage) DeletePrefix(ctx context.Context, prefix string) error {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	if _, err := s.coll.DeleteMany(ctx, filter); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *Storage) context() (context.Context, context.CancelFunc) {
	if s.opTimeout > 0 {
		return context.WithTimeout(context.Background(), s.opTimeout)
	}
	return context.WithCancel(context.Background())
}
