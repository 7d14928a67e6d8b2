package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayush/vibrant-blog/internal/httpjson"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/models"
	"github.com/ayush/vibrant-blog/internal/store"
)

//go:generate mockgen -source=handler.go -destination=mock_handler.go -package=profile

// UserStore defines the user persistence needed by profile handlers.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePortfolio(ctx context.Context, username, portfolio string) (*models.User, error)
}

// BlogCounter counts blogs written under a username.
type BlogCounter interface {
	CountByAuthor(ctx context.Context, author string) (int64, error)
}

// Handler serves GET and PUT /profile.
//
// Both operations act on the username supplied by the client, not on the
// identity in the bearer token, so any signed-in user can read or edit any
// profile.
type Handler struct {
	users UserStore
	blogs BlogCounter
}

func NewHandler(users UserStore, blogs BlogCounter) *Handler {
	return &Handler{users: users, blogs: blogs}
}

// Get returns the profile named by ?username= with a live blog count.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpjson.Message(w, http.StatusBadRequest, "User not found")
			return
		}
		logger.Log.Errorw("profile lookup failed", "username", username, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching profile")
		return
	}

	count, err := h.blogs.CountByAuthor(r.Context(), user.Username)
	if err != nil {
		logger.Log.Errorw("blog count failed", "username", username, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching profile")
		return
	}

	httpjson.Write(w, http.StatusOK, models.Profile{
		Username:       user.Username,
		Email:          user.Email,
		Portfolio:      user.Portfolio,
		ProfilePicture: user.ProfilePicture,
		BlogsCount:     count,
	})
}

// Update overwrites the portfolio text of the named user.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdatePortfolio(r.Context(), req.Username, req.Portfolio)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpjson.Message(w, http.StatusBadRequest, "User not found")
			return
		}
		logger.Log.Errorw("portfolio update failed", "username", req.Username, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
