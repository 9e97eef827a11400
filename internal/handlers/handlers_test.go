package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguachat/internal/analytics"
	"linguachat/internal/domain"
	"linguachat/internal/middleware"
	"linguachat/internal/pubsub"
	"linguachat/internal/relay"
	"linguachat/internal/testutils"
)

type nopTranslator struct{}

func (nopTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return text, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, msg pubsub.Message) error { return nil }
func (nopPublisher) Close() error                                          { return nil }

func newTestEnv() (*relay.Relay, *analytics.Aggregator, *testutils.MemoryMessageStore) {
	users := testutils.NewMemoryUserDirectory(
		domain.User{ID: "alice", FullName: "Alice A", Email: "alice@example.com", PreferredLanguage: "English"},
		domain.User{ID: "bernd", FullName: "Bernd B", Email: "bernd@example.com", PreferredLanguage: "German"},
	)
	store := testutils.NewMemoryMessageStore()
	r := relay.New(users, store, nopTranslator{}, nopPublisher{})
	a := analytics.New(store, users)
	return r, a, store
}

// doRequest runs a handler as the given authenticated user.
func doRequest(method, target, body, userID string, handler echo.HandlerFunc, pathParam ...string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, userID)
	if len(pathParam) == 2 {
		c.SetParamNames(pathParam[0])
		c.SetParamValues(pathParam[1])
	}
	_ = handler(c)
	return rec
}

func TestSendMessage_Created(t *testing.T) {
	r, _, store := newTestEnv()
	h := NewMessageHandler(r)

	rec := doRequest(http.MethodPost, "/api/messages/send/bernd",
		`{"text":"Hello"}`, "alice", h.SendMessage, "id", "bernd")

	require.Equal(t, http.StatusCreated, rec.Code)

	var msg domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "alice", msg.SenderID)
	assert.Equal(t, "bernd", msg.ReceiverID)
	assert.Equal(t, "Hello", msg.Text)
	assert.NotEmpty(t, msg.ID)
	assert.Len(t, store.All(), 1)
}

func TestSendMessage_EmptyPayloadRejected(t *testing.T) {
	r, _, store := newTestEnv()
	h := NewMessageHandler(r)

	rec := doRequest(http.MethodPost, "/api/messages/send/bernd",
		`{}`, "alice", h.SendMessage, "id", "bernd")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_request", errResp.Code)
	assert.Empty(t, store.All())
}

func TestSendMessage_SelfMessageRejected(t *testing.T) {
	r, _, _ := newTestEnv()
	h := NewMessageHandler(r)

	rec := doRequest(http.MethodPost, "/api/messages/send/alice",
		`{"text":"hi me"}`, "alice", h.SendMessage, "id", "alice")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessage_UnknownReceiver(t *testing.T) {
	r, _, _ := newTestEnv()
	h := NewMessageHandler(r)

	rec := doRequest(http.MethodPost, "/api/messages/send/nobody",
		`{"text":"hi"}`, "alice", h.SendMessage, "id", "nobody")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "not_found", errResp.Code)
}

func TestSendMessage_StoreOutage(t *testing.T) {
	r, _, store := newTestEnv()
	store.FailInsert = true
	h := NewMessageHandler(r)

	rec := doRequest(http.MethodPost, "/api/messages/send/bernd",
		`{"text":"hi"}`, "alice", h.SendMessage, "id", "bernd")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "persistence_failed", errResp.Code)
}

func TestGetMessages_ReturnsConversation(t *testing.T) {
	r, _, _ := newTestEnv()
	h := NewMessageHandler(r)

	for _, text := range []string{"one", "two"} {
		_, err := r.Send(context.Background(), relay.SendRequest{
			SenderID: "alice", ReceiverID: "bernd", Text: text,
		})
		require.NoError(t, err)
	}

	rec := doRequest(http.MethodGet, "/api/messages/bernd", "", "alice", h.GetMessages, "id", "bernd")

	require.Equal(t, http.StatusOK, rec.Code)

	var messages []domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Text)
	assert.Equal(t, "two", messages[1].Text)
}

func TestGetAnalytics_Shape(t *testing.T) {
	r, a, _ := newTestEnv()
	h := NewAnalyticsHandler(a)

	_, err := r.Send(context.Background(), relay.SendRequest{SenderID: "alice", ReceiverID: "bernd", Text: "hi"})
	require.NoError(t, err)

	rec := doRequest(http.MethodGet, "/api/analytics", "", "alice", h.GetAnalytics)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalMessages int `json:"totalMessages"`
		TotalChats    int `json:"totalChats"`
		MostChatted   []struct {
			UserID       string `json:"userId"`
			FullName     string `json:"fullName"`
			Email        string `json:"email"`
			MessageCount int    `json:"messageCount"`
		} `json:"mostChattedFriends"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TotalMessages)
	assert.Equal(t, 1, body.TotalChats)
	require.Len(t, body.MostChatted, 1)
	assert.Equal(t, "bernd", body.MostChatted[0].UserID)
	assert.Equal(t, "Bernd B", body.MostChatted[0].FullName)
	assert.Equal(t, 1, body.MostChatted[0].MessageCount)
}

func TestGetAnalytics_StoreOutage(t *testing.T) {
	_, a, store := newTestEnv()
	store.FailRead = true
	h := NewAnalyticsHandler(a)

	rec := doRequest(http.MethodGet, "/api/analytics", "", "alice", h.GetAnalytics)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
