package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/vibrant-blog/internal/models"
	"github.com/ayush/vibrant-blog/internal/store"
)

var validFields = map[string]string{
	"title":    "Hello",
	"content":  "First post",
	"author":   "alice",
	"category": "Technology",
}

func withField(k, v string) map[string]string {
	out := make(map[string]string, len(validFields))
	for key, val := range validFields {
		out[key] = val
	}
	if v == "" {
		delete(out, k)
	} else {
		out[k] = v
	}
	return out
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/blogs/create", h.Create)
	r.Get("/blogs", h.List)
	r.Put("/update-blog/{id}", h.Update)
	r.Delete("/delete-blog/{id}", h.Delete)
	return r
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func diskUploader(t *testing.T) (*Uploader, string) {
	t.Helper()
	dir := t.TempDir()
	images, err := store.NewDiskImages(dir)
	require.NoError(t, err)
	return NewUploader(images), dir
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestCreate(t *testing.T) {
	id := primitive.NewObjectID()
	assignID := func(_ context.Context, b *models.Blog) error {
		b.ID = id
		return nil
	}

	tests := []struct {
		name         string
		fields       map[string]string
		file         *upload
		mockSetup    func(m *MockBlogStore)
		expectedCode int
		expectedMsg  string
		wantFiles    int
	}{
		{
			name:         "with image",
			fields:       validFields,
			file:         &upload{"cover.jpg", "image/jpeg", fakeJPEG(1 << 20)},
			mockSetup:    func(m *MockBlogStore) { m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(assignID) },
			expectedCode: http.StatusOK,
			expectedMsg:  "Blog created successfully",
			wantFiles:    1,
		},
		{
			name:         "without image",
			fields:       withField("externalLink", "https://example.com"),
			mockSetup:    func(m *MockBlogStore) { m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(assignID) },
			expectedCode: http.StatusOK,
			expectedMsg:  "Blog created successfully",
		},
		{
			name:         "image too large",
			fields:       validFields,
			file:         &upload{"big.jpg", "image/jpeg", fakeJPEG(6 << 20)},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Image exceeds the 5MB limit",
		},
		{
			name:         "not an image",
			fields:       validFields,
			file:         &upload{"notes.txt", "text/plain", []byte("hello")},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Only images are allowed (jpeg, jpg, png, gif)",
		},
		{
			name:         "disguised image",
			fields:       validFields,
			file:         &upload{"fake.png", "image/png", []byte("plain text pretending")},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Only images are allowed (jpeg, jpg, png, gif)",
		},
		{
			name:         "missing title",
			fields:       withField("title", ""),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Please fill all the required fields",
		},
		{
			name:         "missing category",
			fields:       withField("category", ""),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Please fill all the required fields",
		},
		{
			name:         "unknown category",
			fields:       withField("category", "Sports"),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid category selected",
		},
		{
			name:   "insert fails",
			fields: validFields,
			file:   &upload{"cover.jpg", "image/jpeg", fakeJPEG(512)},
			mockSetup: func(m *MockBlogStore) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Error creating blog, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			blogs := NewMockBlogStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(blogs)
			}
			uploads, dir := diskUploader(t)

			body, ct := multipartBody(t, tt.fields, tt.file)
			req := httptest.NewRequest(http.MethodPost, "/blogs/create", body)
			req.Header.Set("Content-Type", ct)
			rr := httptest.NewRecorder()
			newTestRouter(NewHandler(blogs, uploads)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedMsg, decode(t, rr)["message"])
			assert.Equal(t, tt.wantFiles, countFiles(t, dir))
		})
	}
}

func TestCreateResponseCarriesBlog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blogs := NewMockBlogStore(ctrl)
	blogs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *models.Blog) error {
		assert.Equal(t, "Hello", b.Title)
		assert.Equal(t, "alice", b.Author)
		assert.Regexp(t, `^/uploads/\d+\.png$`, b.Image)
		b.ID = primitive.NewObjectID()
		return nil
	})
	uploads, _ := diskUploader(t)

	body, ct := multipartBody(t, validFields, &upload{"c.png", "image/png", pngHeader})
	req := httptest.NewRequest(http.MethodPost, "/blogs/create", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	newTestRouter(NewHandler(blogs, uploads)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	blog, ok := decode(t, rr)["blog"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Technology", blog["category"])
	assert.NotEmpty(t, blog["_id"])
	assert.Contains(t, blog["image"], "/uploads/")
}

func TestCreateRejectsExtraFiles(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{name: "two images", files: []string{"image", "image"}},
		{name: "unknown file field", files: []string{"avatar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uploads, dir := diskUploader(t)

			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			for k, v := range validFields {
				require.NoError(t, mw.WriteField(k, v))
			}
			for i, field := range tt.files {
				h := make(textproto.MIMEHeader)
				h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%d.png"`, field, i))
				h.Set("Content-Type", "image/png")
				part, err := mw.CreatePart(h)
				require.NoError(t, err)
				_, err = part.Write(pngHeader)
				require.NoError(t, err)
			}
			require.NoError(t, mw.Close())

			req := httptest.NewRequest(http.MethodPost, "/blogs/create", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			rr := httptest.NewRecorder()
			newTestRouter(NewHandler(NewMockBlogStore(ctrl), uploads)).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "Only one image may be uploaded", decode(t, rr)["message"])
			assert.Equal(t, 0, countFiles(t, dir))
		})
	}
}

func TestCreateJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blogs := NewMockBlogStore(ctrl)
	blogs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *models.Blog) error {
		assert.Empty(t, b.Image)
		assert.Equal(t, "Health", b.Category)
		return nil
	})
	uploads, _ := diskUploader(t)

	req := httptest.NewRequest(http.MethodPost, "/blogs/create",
		bytes.NewBufferString(`{"title":"T","content":"C","author":"bob","category":"Health"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newTestRouter(NewHandler(blogs, uploads)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		blogs := NewMockBlogStore(ctrl)
		blogs.EXPECT().List(gomock.Any()).Return(nil, nil)

		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(blogs, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blogs", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"blogs":[]}`, rr.Body.String())
	})

	t.Run("two posts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		blogs := NewMockBlogStore(ctrl)
		blogs.EXPECT().List(gomock.Any()).Return([]models.Blog{
			{ID: primitive.NewObjectID(), Title: "a", Category: "Health"},
			{ID: primitive.NewObjectID(), Title: "b", Category: "Business"},
		}, nil)

		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(blogs, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blogs", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		list, ok := decode(t, rr)["blogs"].([]any)
		require.True(t, ok)
		assert.Len(t, list, 2)
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		blogs := NewMockBlogStore(ctrl)
		blogs.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(blogs, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blogs", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Error fetching blogs", decode(t, rr)["message"])
	})
}

func TestUpdate(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	upd := models.BlogUpdate{Title: "New", Content: "Body", Category: "Business"}
	valid := `{"title":"New","content":"Body","category":"Business"}`

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockBlogStore)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			body: valid,
			mockSetup: func(m *MockBlogStore) {
				m.EXPECT().Update(gomock.Any(), id, upd).Return(&models.Blog{Title: "New", Category: "Business"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Blog updated successfully",
		},
		{
			name: "not found",
			body: valid,
			mockSetup: func(m *MockBlogStore) {
				m.EXPECT().Update(gomock.Any(), id, upd).Return(nil, fmt.Errorf("update blog: %w", store.ErrNotFound))
			},
			expectedCode: http.StatusNotFound,
			expectedMsg:  "Blog not found",
		},
		{
			name:         "bad category",
			body:         `{"title":"New","content":"Body","category":"Sports"}`,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid category selected",
		},
		{
			name:         "empty category",
			body:         `{"title":"New","content":"Body"}`,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid category selected",
		},
		{
			name:         "bad json",
			body:         `title=New`,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid request body",
		},
		{
			name: "store error",
			body: valid,
			mockSetup: func(m *MockBlogStore) {
				m.EXPECT().Update(gomock.Any(), id, upd).Return(nil, errors.New("write conflict"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Failed to update blog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			blogs := NewMockBlogStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(blogs)
			}

			req := httptest.NewRequest(http.MethodPut, "/update-blog/"+id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			newTestRouter(NewHandler(blogs, nil)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedMsg, decode(t, rr)["message"])
		})
	}
}

func TestDeleteTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uploads, dir := diskUploader(t)
	require.NoError(t, os.WriteFile(dir+"/42.png", pngHeader, 0o644))

	id := primitive.NewObjectID().Hex()
	blogs := NewMockBlogStore(ctrl)
	gomock.InOrder(
		blogs.EXPECT().Delete(gomock.Any(), id).Return(&models.Blog{Image: "/uploads/42.png"}, nil),
		blogs.EXPECT().Delete(gomock.Any(), id).Return(nil, fmt.Errorf("delete blog: %w", store.ErrNotFound)),
	)
	router := newTestRouter(NewHandler(blogs, uploads))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/delete-blog/"+id, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Blog deleted successfully", decode(t, rr)["message"])
	assert.Equal(t, 0, countFiles(t, dir))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/delete-blog/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Blog not found", decode(t, rr)["message"])
}

func TestDeleteStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blogs := NewMockBlogStore(ctrl)
	blogs.EXPECT().Delete(gomock.Any(), "x").Return(nil, errors.New("boom"))

	rr := httptest.NewRecorder()
	newTestRouter(NewHandler(blogs, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/delete-blog/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to delete blog", decode(t, rr)["message"])
}
