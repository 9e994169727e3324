package source

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/errors"
)

// MongoConfig locates a bead collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connecting and each query. Zero means 10s.
	Timeout time.Duration
}

// Validate reports missing fields.
func (c MongoConfig) Validate() error {
	switch {
	case c.URI == "":
		return errors.New(errors.ErrCodeInvalidInput, "mongo: uri is required")
	case c.Database == "":
		return errors.New(errors.ErrCodeInvalidInput, "mongo: database is required")
	case c.Collection == "":
		return errors.New(errors.ErrCodeInvalidInput, "mongo: collection is required")
	}
	return nil
}

// Mongo loads beads stored one document per bead, using the same field
// names as the JSON form. Documents are read in _id order so repeated
// loads produce identical input.
type Mongo struct {
	cfg    MongoConfig
	client *mongo.Client
	// Filter restricts the documents loaded. Nil loads all.
	Filter bson.M
}

// NewMongo connects to MongoDB.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &Mongo{cfg: cfg, client: client}, nil
}

// Name implements Source.
func (m *Mongo) Name() string {
	return fmt.Sprintf("mongo:%s.%s", m.cfg.Database, m.cfg.Collection)
}

func (m *Mongo) coll() *mongo.Collection {
	return m.client.Database(m.cfg.Database).Collection(m.cfg.Collection)
}

// Load implements Source.
func (m *Mongo) Load(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	filter := m.Filter
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := m.coll().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", m.Name(), err)
	}
	var items []bead.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: decode beads", m.Name())
	}
	return encode(items)
}

// Replace overwrites the collection with items, in order.
func (m *Mongo) Replace(ctx context.Context, items []bead.Item) error {
	if err := bead.Validate(items); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	coll := m.coll()
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("%s: clear: %w", m.Name(), err)
	}
	if len(items) == 0 {
		return nil
	}
	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = it
	}
	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("%s: insert: %w", m.Name(), err)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
