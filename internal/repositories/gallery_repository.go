package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GalleryRepository defines the interface for gallery item data operations
type GalleryRepository interface {
	ListPublished(ctx context.Context, query models.GalleryQuery) ([]models.GalleryItem, error)
	GetByID(ctx context.Context, contentType models.ContentType, id string) (*models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	IncrementViewsCount(ctx context.Context, contentType models.ContentType, id string) error
	IncrementCommentsCount(ctx context.Context, contentType models.ContentType, id string) error
	DecrementCommentsCount(ctx context.Context, contentType models.ContentType, id string) error
	DeleteByOwner(ctx context.Context, contentType models.ContentType, userID string) (int64, error)
}

// MongoGalleryRepository implements GalleryRepository with one MongoDB collection per content type
type MongoGalleryRepository struct {
	db *mongo.Database
}

// NewMongoGalleryRepository creates a new MongoGalleryRepository
func NewMongoGalleryRepository(db *mongo.Database) *MongoGalleryRepository {
	return &MongoGalleryRepository{db: db}
}

func (r *MongoGalleryRepository) collection(contentType models.ContentType) (*mongo.Collection, error) {
	name := contentType.Collection()
	if name == "" {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownContentType, contentType)
	}
	return r.db.Collection(name), nil
}

// EnsureIndexes creates the listing and ownership indexes on every gallery collection
func (r *MongoGalleryRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	for _, t := range models.AllContentTypes() {
		coll, _ := r.collection(t)
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", t.Collection(), err)
		}
	}
	return nil
}

// publishedFilter builds the listing filter: published only, optionally one category
func publishedFilter(query models.GalleryQuery) bson.M {
	filter := bson.M{"status": models.StatusPublished}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	return filter
}

// newestFirst orders listings by creation time, descending
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

// ListPublished retrieves every published item of a content type, newest first
func (r *MongoGalleryRepository) ListPublished(ctx context.Context, query models.GalleryQuery) ([]models.GalleryItem, error) {
	coll, err := r.collection(query.Type)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, publishedFilter(query), newestFirst())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	items := []models.GalleryItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return items, nil
}

// GetByID retrieves a single item by its hex ObjectID
func (r *MongoGalleryRepository) GetByID(ctx context.Context, contentType models.ContentType, id string) (*models.GalleryItem, error) {
	coll, err := r.collection(contentType)
	if err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid item ID format", ErrNotFound)
	}

	var item models.GalleryItem
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, contentType, id)
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item and assigns its ID
func (r *MongoGalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	coll, err := r.collection(item.Type)
	if err != nil {
		return err
	}

	now := time.Now()
	item.ID = primitive.NewObjectID()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if _, err := coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func (r *MongoGalleryRepository) incrementField(ctx context.Context, contentType models.ContentType, id, field string, delta int) error {
	coll, err := r.collection(contentType)
	if err != nil {
		return err
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid item ID format", ErrNotFound)
	}
	_, err = coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

// IncrementViewsCount increments the views count of an item
func (r *MongoGalleryRepository) IncrementViewsCount(ctx context.Context, contentType models.ContentType, id string) error {
	return r.incrementField(ctx, contentType, id, "views_count", 1)
}

// IncrementCommentsCount increments the comments count of an item
func (r *MongoGalleryRepository) IncrementCommentsCount(ctx context.Context, contentType models.ContentType, id string) error {
	return r.incrementField(ctx, contentType, id, "comments_count", 1)
}

// DecrementCommentsCount decrements the comments count of an item
func (r *MongoGalleryRepository) DecrementCommentsCount(ctx context.Context, contentType models.ContentType, id string) error {
	return r.incrementField(ctx, contentType, id, "comments_count", -1)
}

// DeleteByOwner removes every item of a content type owned by userID
func (r *MongoGalleryRepository) DeleteByOwner(ctx context.Context, contentType models.ContentType, userID string) (int64, error) {
	coll, err := r.collection(contentType)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	return res.DeletedCount, nil
}
