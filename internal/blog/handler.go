package blog

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ayush/vibrant-blog/internal/httpjson"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/models"
	"github.com/ayush/vibrant-blog/internal/store"
)

//go:generate mockgen -destination=mock_store.go -package=blog . BlogStore,ImageStore

// BlogStore defines the blog persistence used by the handlers.
type BlogStore interface {
	Create(ctx context.Context, b *models.Blog) error
	List(ctx context.Context) ([]models.Blog, error)
	Update(ctx context.Context, id string, upd models.BlogUpdate) (*models.Blog, error)
	Delete(ctx context.Context, id string) (*models.Blog, error)
}

const (
	// maxRequestSize bounds a create request: one image plus its text fields.
	maxRequestSize = MaxImageSize + 1<<20
	formMemory     = 1 << 20
	imageField     = "image"
)

const (
	msgRequired        = "Please fill all the required fields"
	msgInvalidCategory = "Invalid category selected"
	msgNotImage        = "Only images are allowed (jpeg, jpg, png, gif)"
	msgTooLarge        = "Image exceeds the 5MB limit"
	msgNotFound        = "Blog not found"
)

var errUnexpectedFile = errors.New("unexpected file field")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("blogcategory", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Handler serves blog CRUD.
//
// Update and Delete only require a signed-in user; they do not check that
// the caller wrote the post. Author on create is taken from the form, not
// from the token.
type Handler struct {
	blogs   BlogStore
	uploads *Uploader
}

func NewHandler(blogs BlogStore, uploads *Uploader) *Handler {
	return &Handler{blogs: blogs, uploads: uploads}
}

// Create handles POST /blogs/create. The body is multipart/form-data with an
// optional "image" file; a JSON body without an image is also accepted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	form, fh, err := parseCreate(r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr), r.ContentLength > maxRequestSize:
			httpjson.Message(w, http.StatusBadRequest, msgTooLarge)
		case errors.Is(err, errUnexpectedFile):
			httpjson.Message(w, http.StatusBadRequest, "Only one image may be uploaded")
		default:
			httpjson.Message(w, http.StatusBadRequest, "Invalid form data")
		}
		return
	}

	var contentType string
	if fh != nil {
		contentType, err = h.uploads.Check(fh)
		switch {
		case errors.Is(err, ErrImageTooLarge):
			httpjson.Message(w, http.StatusBadRequest, msgTooLarge)
			return
		case errors.Is(err, ErrNotImage):
			httpjson.Message(w, http.StatusBadRequest, msgNotImage)
			return
		case err != nil:
			logger.Log.Errorw("failed to inspect upload", "err", err)
			httpjson.Message(w, http.StatusInternalServerError, "Error creating blog, please try again")
			return
		}
	}

	if err := validate.Struct(form); err != nil {
		httpjson.Message(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	b := &models.Blog{
		Title:        form.Title,
		Content:      form.Content,
		Author:       form.Author,
		Category:     form.Category,
		ExternalLink: form.ExternalLink,
	}
	if fh != nil {
		b.Image, err = h.uploads.Save(r.Context(), fh, contentType)
		if err != nil {
			logger.Log.Errorw("failed to store image", "err", err)
			httpjson.Message(w, http.StatusInternalServerError, "Error creating blog, please try again")
			return
		}
	}

	if err := h.blogs.Create(r.Context(), b); err != nil {
		logger.Log.Errorw("failed to save blog", "err", err)
		if b.Image != "" {
			if rmErr := h.uploads.Remove(r.Context(), b.Image); rmErr != nil {
				logger.Log.Warnw("orphaned image", "image", b.Image, "err", rmErr)
			}
		}
		httpjson.Message(w, http.StatusInternalServerError, "Error creating blog, please try again")
		return
	}

	logger.Log.Infow("blog created", "id", b.ID.Hex(), "author", b.Author)
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Blog created successfully",
		"blog":    b,
	})
}

// List handles GET /blogs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		logger.Log.Errorw("failed to list blogs", "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching blogs")
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"blogs": blogs})
}

// Update handles PUT /update-blog/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.BlogUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidCategory(upd.Category) {
		httpjson.Message(w, http.StatusBadRequest, msgInvalidCategory)
		return
	}

	b, err := h.blogs.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpjson.Message(w, http.StatusNotFound, msgNotFound)
			return
		}
		logger.Log.Errorw("failed to update blog", "id", id, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to update blog")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Blog updated successfully",
		"blog":    b,
	})
}

// Delete handles DELETE /delete-blog/{id} and removes the post's image.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.blogs.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpjson.Message(w, http.StatusNotFound, msgNotFound)
			return
		}
		logger.Log.Errorw("failed to delete blog", "id", id, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to delete blog")
		return
	}

	if b.Image != "" {
		if err := h.uploads.Remove(r.Context(), b.Image); err != nil {
			logger.Log.Warnw("failed to remove image of deleted blog", "id", id, "image", b.Image, "err", err)
		}
	}

	httpjson.Message(w, http.StatusOK, "Blog deleted successfully")
}

// parseCreate reads the text fields and the optional image of a create request.
func parseCreate(r *http.Request) (models.BlogForm, *multipart.FileHeader, error) {
	var form models.BlogForm

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, nil, err
	}

	if err := r.ParseMultipartForm(formMemory); err != nil {
		return form, nil, err
	}
	form = models.BlogForm{
		Title:        r.PostFormValue("title"),
		Content:      r.PostFormValue("content"),
		Author:       r.PostFormValue("author"),
		Category:     r.PostFormValue("category"),
		ExternalLink: r.PostFormValue("externalLink"),
	}

	var fh *multipart.FileHeader
	for field, files := range r.MultipartForm.File {
		if field != imageField || len(files) > 1 {
			return form, nil, errUnexpectedFile
		}
		fh = files[0]
	}
	return form, fh, nil
}

// validationMessage reports missing fields before a bad category.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgRequired
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return msgRequired
		}
	}
	return msgInvalidCategory
}
