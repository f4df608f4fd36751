package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/middlewares"
)

//go:generate mockgen -source=webhook.go -destination=webhook_mock.go -package=handlers

// UpdateProcessor handles a single Telegram update.
type UpdateProcessor interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

// NewWebhookHandler returns an HTTP handler that accepts Telegram webhook deliveries.
// The update is processed before the response is written.
func NewWebhookHandler(processor UpdateProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			logger.Log.Errorw("invalid webhook payload",
				"request_id", middlewares.RequestIDFromContext(r.Context()), "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		processor.HandleUpdate(r.Context(), upd)
		w.WriteHeader(http.StatusOK)
	}
}

// NewHealthHandler returns an HTTP handler reporting that the bot process is up.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// NewRouter mounts the health check and, when webhook is not nil, the webhook endpoint.
func NewRouter(webhook http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Get("/healthz", NewHealthHandler())
	if webhook != nil {
		r.Post("/webhook", webhook.ServeHTTP)
	}
	return r
}
