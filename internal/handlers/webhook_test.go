package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestWebhookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	processor := NewMockUpdateProcessor(ctrl)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
	}{
		{
			name: "valid update",
			body: `{"update_id":10,"message":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"Wallet"}}`,
			setupMocks: func() {
				processor.EXPECT().HandleUpdate(gomock.Any(), gomock.Any()).Do(func(_ interface{}, upd tgbotapi.Update) {
					assert.Equal(t, 10, upd.UpdateID)
					assert.Equal(t, int64(42), upd.Message.Chat.ID)
					assert.Equal(t, "Wallet", upd.Message.Text)
				})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed payload",
			body:           `{"update_id":`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			router := NewRouter(NewWebhookHandler(processor))
			req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name           string
		webhook        http.Handler
		method         string
		path           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "webhook disabled in polling mode", method: http.MethodPost, path: "/webhook", expectedStatus: http.StatusNotFound},
		{
			name:           "webhook only accepts POST",
			webhook:        NewWebhookHandler(nil),
			method:         http.MethodGet,
			path:           "/webhook",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewRouter(tt.webhook).ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}

	rr := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rr.Body.String())
}
