package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/vibrant-blog/internal/models"
)

// BlogStore handles blog post CRUD in MongoDB.
type BlogStore struct {
	col *mongo.Collection
}

func NewBlogStore(db *mongo.Database) *BlogStore {
	return &BlogStore{col: db.Collection(BlogsCollection)}
}

// Create inserts b and sets its ID. CreatedAt defaults to now.
func (s *BlogStore) Create(ctx context.Context, b *models.Blog) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := s.col.InsertOne(ctx, b)
	if err != nil {
		return wrapErr("insert blog", err)
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// List returns every blog in natural order. It never returns a nil slice.
func (s *BlogStore) List(ctx context.Context) ([]models.Blog, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapErr("list blogs", err)
	}
	defer cur.Close(ctx)

	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, wrapErr("list blogs", err)
	}
	return blogs, nil
}

func (s *BlogStore) Get(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var b models.Blog
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return nil, wrapErr("get blog", err)
	}
	return &b, nil
}

// Update overwrites title, content, category and externalLink and returns
// the updated document. Author and image are left untouched.
func (s *BlogStore) Update(ctx context.Context, id string, upd models.BlogUpdate) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Blog
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": upd}, opts).Decode(&b)
	if err != nil {
		return nil, wrapErr("update blog", err)
	}
	return &b, nil
}

// Delete removes the blog and returns the document as it was.
func (s *BlogStore) Delete(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var b models.Blog
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return nil, wrapErr("delete blog", err)
	}
	return &b, nil
}

// CountByAuthor counts blogs whose author field equals author.
func (s *BlogStore) CountByAuthor(ctx context.Context, author string) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"author": author})
	if err != nil {
		return 0, wrapErr("count blogs", err)
	}
	return n, nil
}
