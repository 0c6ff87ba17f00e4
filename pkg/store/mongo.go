package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
)

// MongoConfig configures a MongoDB page store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string // defaults to "pages"
	// Timeout bounds server selection; zero means 10s.
	Timeout time.Duration
}

// MongoStore keeps one document per page:
//
//	{ _id: <page id>, page: { components: [...] }, component_count: 3, updated_at: ISODate(...) }
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

type pageDocument struct {
	ID             string    `bson:"_id"`
	Page           page.Page `bson:"page"`
	ComponentCount int       `bson:"component_count"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Collection == "" {
		cfg.Collection = "pages"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetBSONOptions(&options.BSONOptions{
			// Instances carry only json tags.
			UseJSONStructTags: true,
			// Decode nested props as maps rather than ordered documents.
			DefaultDocumentM: true,
		})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		now:    time.Now,
	}, nil
}

// Load fetches a page document by id.
func (s *MongoStore) Load(ctx context.Context, pageID string) (*page.Page, error) {
	if err := errors.ValidateID(pageID); err != nil {
		return nil, err
	}
	var doc pageDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": pageID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(pageID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load page %s", pageID)
	}
	return normalize(&doc.Page)
}

// Save upserts a page document.
func (s *MongoStore) Save(ctx context.Context, pageID string, p *page.Page) error {
	if err := errors.ValidateID(pageID); err != nil {
		return err
	}
	sum := summarize(pageID, p, s.now())
	doc := pageDocument{ID: pageID, Page: *p, ComponentCount: sum.Components, UpdatedAt: sum.UpdatedAt}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": pageID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save page %s", pageID)
	}
	return nil
}

// Delete removes a page document.
func (s *MongoStore) Delete(ctx context.Context, pageID string) error {
	if err := errors.ValidateID(pageID); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": pageID}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete page %s", pageID)
	}
	return nil
}

// List returns page summaries without fetching page bodies.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"page": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list pages")
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list pages")
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// normalize converts BSON-decoded values (bson.M, bson.A, int32...) into
// the plain JSON value types the rest of the module works with.
func normalize(p *page.Page) (*page.Page, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "normalize page")
	}
	return page.Unmarshal(data)
}

var _ Store = (*MongoStore)(nil)
