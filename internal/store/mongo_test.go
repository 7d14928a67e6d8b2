package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/vibrant-blog/internal/models"
)

func setupMongoContainer(t *testing.T) *mongo.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	var client *mongo.Client
	for i := 0; i < 10; i++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				break
			}
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })
	return client
}

func TestMongoStores(t *testing.T) {
	client := setupMongoContainer(t)
	ctx := context.Background()

	newDB := func(t *testing.T) *mongo.Database {
		db := client.Database(fmt.Sprintf("blog_%d", time.Now().UnixNano()))
		require.NoError(t, Migrate(ctx, db))
		t.Cleanup(func() { _ = db.Drop(ctx) })
		return db
	}

	t.Run("users", func(t *testing.T) {
		s := NewUserStore(newDB(t))

		_, err := s.FindByUsernameOrEmail(ctx, "alice", "a@x.com")
		assert.ErrorIs(t, err, ErrNotFound)

		u := &models.User{Username: "alice", Email: "a@x.com", Password: "hash"}
		require.NoError(t, s.Create(ctx, u))
		assert.False(t, u.ID.IsZero())

		byName, err := s.FindByUsernameOrEmail(ctx, "alice", "other@x.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)

		byEmail, err := s.FindByUsernameOrEmail(ctx, "bob", "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		err = s.Create(ctx, &models.User{Username: "alice", Email: "b@x.com", Password: "h"})
		assert.ErrorIs(t, err, ErrDuplicate)
		err = s.Create(ctx, &models.User{Username: "bob", Email: "a@x.com", Password: "h"})
		assert.ErrorIs(t, err, ErrDuplicate)

		updated, err := s.UpdatePortfolio(ctx, "alice", "my work")
		require.NoError(t, err)
		assert.Equal(t, "my work", updated.Portfolio)
		assert.Equal(t, "hash", updated.Password)

		_, err = s.UpdatePortfolio(ctx, "ghost", "x")
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := s.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "my work", got.Portfolio)
	})

	t.Run("subscriptions", func(t *testing.T) {
		s := NewSubscriptionStore(newDB(t))

		sub := &models.Subscription{Email: "reader@x.com"}
		require.NoError(t, s.Create(ctx, sub))
		assert.False(t, sub.SubscribedAt.IsZero())

		err := s.Create(ctx, &models.Subscription{Email: "reader@x.com"})
		assert.ErrorIs(t, err, ErrDuplicate)

		got, err := s.FindByEmail(ctx, "reader@x.com")
		require.NoError(t, err)
		assert.False(t, got.EmailSent)

		require.NoError(t, s.MarkEmailSent(ctx, sub.ID))
		got, err = s.FindByEmail(ctx, "reader@x.com")
		require.NoError(t, err)
		assert.True(t, got.EmailSent)

		assert.ErrorIs(t, s.MarkEmailSent(ctx, primitive.NewObjectID()), ErrNotFound)
	})

	t.Run("blogs", func(t *testing.T) {
		s := NewBlogStore(newDB(t))

		blogs, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, blogs)
		assert.Empty(t, blogs)

		b := &models.Blog{
			Title: "Hello", Content: "World", Author: "alice",
			Category: "Technology", Image: "/uploads/1.png",
		}
		require.NoError(t, s.Create(ctx, b))
		require.NoError(t, s.Create(ctx, &models.Blog{Title: "2", Content: "c", Author: "bob", Category: "Health"}))

		n, err := s.CountByAuthor(ctx, "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		blogs, err = s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, blogs, 2)

		updated, err := s.Update(ctx, b.ID.Hex(), models.BlogUpdate{
			Title: "Hi", Content: "There", Category: "Business", ExternalLink: "https://x.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Hi", updated.Title)
		assert.Equal(t, "Business", updated.Category)
		assert.Equal(t, "alice", updated.Author)
		assert.Equal(t, "/uploads/1.png", updated.Image)

		_, err = s.Update(ctx, primitive.NewObjectID().Hex(), models.BlogUpdate{})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Update(ctx, "not-an-id", models.BlogUpdate{})
		assert.ErrorIs(t, err, ErrNotFound)

		deleted, err := s.Delete(ctx, b.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "/uploads/1.png", deleted.Image)

		_, err = s.Delete(ctx, b.ID.Hex())
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Get(ctx, b.ID.Hex())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
