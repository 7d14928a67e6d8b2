package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/vibrant-blog/internal/httpjson"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/metrics"
	"github.com/ayush/vibrant-blog/internal/models"
	"github.com/ayush/vibrant-blog/internal/store"
)

//go:generate mockgen -source=handler.go -destination=mock_handler.go -package=newsletter

// SubscriptionStore defines the subscription persistence used by Subscribe.
type SubscriptionStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	MarkEmailSent(ctx context.Context, id primitive.ObjectID) error
}

// Sender delivers a single e-mail.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

const msgAlreadySubscribed = "You are already subscribed!"

// Handler serves POST /subscribe.
type Handler struct {
	subs   SubscriptionStore
	mailer Sender
}

func NewHandler(subs SubscriptionStore, mailer Sender) *Handler {
	return &Handler{subs: subs, mailer: mailer}
}

// Subscribe stores the address and then sends the welcome mail before
// responding. If the send fails the subscription stays stored with
// emailSent=false and the client gets a 500.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.Contains(req.Email, "@") {
		httpjson.Message(w, http.StatusBadRequest, "Invalid email address.")
		return
	}
	ctx := r.Context()

	_, err := h.subs.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		httpjson.Message(w, http.StatusBadRequest, msgAlreadySubscribed)
		return
	case !errors.Is(err, store.ErrNotFound):
		h.fail(w, "subscription lookup failed", err)
		return
	}

	sub := &models.Subscription{Email: req.Email}
	if err := h.subs.Create(ctx, sub); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httpjson.Message(w, http.StatusBadRequest, msgAlreadySubscribed)
			return
		}
		h.fail(w, "failed to save subscription", err)
		return
	}

	if err := h.mailer.Send(ctx, sub.Email, WelcomeSubject, WelcomeBody); err != nil {
		metrics.RecordWelcomeEmail(false)
		logger.Log.Errorw("welcome email failed", "email", sub.Email, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	metrics.RecordWelcomeEmail(true)

	if err := h.subs.MarkEmailSent(ctx, sub.ID); err != nil {
		h.fail(w, "failed to flag welcome email", err)
		return
	}

	httpjson.Message(w, http.StatusOK, "Subscription successful! Confirmation Email sent")
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	logger.Log.Errorw(msg, "err", err)
	httpjson.Message(w, http.StatusInternalServerError, "Failed to subscribe. Please try again later.")
}
