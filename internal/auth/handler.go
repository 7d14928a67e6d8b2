package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ayush/vibrant-blog/internal/httpjson"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/models"
	"github.com/ayush/vibrant-blog/internal/store"
)

//go:generate mockgen -source=handler.go -destination=mock_handler.go -package=auth

// UserStore defines the user persistence needed for registration and login.
type UserStore interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// TokenIssuer signs a bearer token for a user.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

const (
	msgUserExists         = "Username or Email already exists"
	msgInvalidCredentials = "Invalid username/email or password"
)

var validate = validator.New()

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens TokenIssuer
}

func NewHandler(users UserStore, tokens TokenIssuer) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	_, err := h.users.FindByUsernameOrEmail(r.Context(), req.Username, req.Email)
	switch {
	case err == nil:
		httpjson.Message(w, http.StatusBadRequest, msgUserExists)
		return
	case !errors.Is(err, store.ErrNotFound):
		logger.Log.Errorw("registration lookup failed", "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := &models.User{Username: req.Username, Email: req.Email, Password: hashed}
	if err := h.users.Create(r.Context(), user); err != nil {
		// a concurrent registration can still win the unique index
		if errors.Is(err, store.ErrDuplicate) {
			httpjson.Message(w, http.StatusBadRequest, msgUserExists)
			return
		}
		logger.Log.Errorw("failed to save user", "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	logger.Log.Infow("user registered", "username", user.Username, "id", user.ID.Hex())
	httpjson.Message(w, http.StatusOK, "Registration successful")
}

// Login authenticates by username or email and returns a signed token.
// Unknown users and wrong passwords get the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Both username/email and password are required")
		return
	}

	user, err := h.users.FindByUsernameOrEmail(r.Context(), req.UsernameOrEmail, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpjson.Message(w, http.StatusBadRequest, msgInvalidCredentials)
			return
		}
		logger.Log.Errorw("login lookup failed", "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	if !CheckPassword(user.Password, req.Password) {
		httpjson.Message(w, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		logger.Log.Errorw("failed to sign token", "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	httpjson.Write(w, http.StatusOK, models.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		Portfolio: user.Portfolio,
	})
}
