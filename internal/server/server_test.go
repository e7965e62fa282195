package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"chat-reactions-be/internal/bootstrap"
	"chat-reactions-be/internal/config"
	"chat-reactions-be/internal/dto"
	"chat-reactions-be/internal/model"
	"chat-reactions-be/internal/pkg/logger"
	"chat-reactions-be/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type harness struct {
	t      *testing.T
	db     *gorm.DB
	app    *fiber.App
	room   *model.ChatdRoom
	tenant uuid.UUID
	member uuid.UUID
	token  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		App:  config.AppConfig{Port: "0", Environment: "test", CorsAllowedOrigins: "*"},
		Auth: config.AuthConfig{JWTSecret: testSecret},
		Bus:  config.BusConfig{Driver: "memory", NotifyConcurrency: 2},
	}
	container := bootstrap.Assemble(db, cfg, testutil.NewRecordingPublisher(), logger.NewNopLogger())

	tenant, member := uuid.New(), uuid.New()
	h := &harness{
		t:      t,
		db:     db,
		app:    New(cfg, container).GetApp(),
		room:   testutil.SeedRoom(t, db, tenant, member),
		tenant: tenant,
		member: member,
	}
	h.token = signToken(t, testSecret, member, tenant)
	return h
}

func signToken(t *testing.T, secret string, userId, tenantId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   userId.String(),
		"tenant_id": tenantId.String(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func (h *harness) do(method, path, body string) (int, []byte) {
	h.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, raw
}

func (h *harness) messagePath(messageId uuid.UUID, suffix string) string {
	return "/api/users/me/rooms/" + h.room.Id.String() + "/messages/" + messageId.String() + suffix
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestReactionRoundTrip(t *testing.T) {
	h := newHarness(t)
	msg := testutil.SeedMessage(t, h.db, h.room, h.member, "hello")
	reactions := h.messagePath(msg.Id, "/reactions")

	status, raw := h.do(http.MethodGet, reactions, "")
	require.Equal(t, http.StatusOK, status)
	empty := decode[dto.MessageReactionsResponse](t, raw)
	assert.Equal(t, msg.Id, empty.MessageId)
	assert.Empty(t, empty.Reactions)
	assert.Contains(t, string(raw), `"reactions":[]`)

	status, raw = h.do(http.MethodPost, reactions, `{"emoji":"👍"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[dto.ReactionResponse](t, raw)
	assert.Equal(t, h.member, created.UserId)
	assert.Equal(t, "👍", created.Emoji)

	status, raw = h.do(http.MethodPost, reactions, `{"emoji":"👍"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "reaction-already-exists", decode[dto.ErrorResponse](t, raw).ErrorId)

	status, raw = h.do(http.MethodGet, reactions, "")
	require.Equal(t, http.StatusOK, status)
	one := decode[dto.MessageReactionsResponse](t, raw)
	require.Len(t, one.Reactions, 1)
	assert.Equal(t, 1, one.Reactions[0].Count)
	assert.True(t, one.Reactions[0].ReactedByMe)
	assert.Equal(t, []uuid.UUID{h.member}, one.Reactions[0].UserIds)

	status, raw = h.do(http.MethodGet, "/api/users/me/rooms/"+h.room.Id.String()+"/reactions", "")
	require.Equal(t, http.StatusOK, status)
	room := decode[dto.RoomReactionsResponse](t, raw)
	assert.Equal(t, one.Reactions, room.Reactions[msg.Id.String()])

	status, _ = h.do(http.MethodDelete, reactions+"/"+url.PathEscape("👍"), "")
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = h.do(http.MethodDelete, reactions+"/"+url.PathEscape("👍"), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "reaction-not-found", decode[dto.ErrorResponse](t, raw).ErrorId)

	_, raw = h.do(http.MethodGet, reactions, "")
	assert.Empty(t, decode[dto.MessageReactionsResponse](t, raw).Reactions)
}

func TestReplyRoundTrip(t *testing.T) {
	h := newHarness(t)
	parent := testutil.SeedMessage(t, h.db, h.room, h.member, strings.Repeat("x", 250))
	child := testutil.SeedMessage(t, h.db, h.room, h.member, "child")

	status, raw := h.do(http.MethodGet, h.messagePath(child.Id, "/reply"), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not-a-reply", decode[dto.ErrorResponse](t, raw).ErrorId)

	status, raw = h.do(http.MethodPost, h.messagePath(child.Id, "/reply"), `{"parent_message_uuid":"`+parent.Id.String()+`"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[dto.ReplyInfoResponse](t, raw)
	require.NotNil(t, created.ParentPreview)
	assert.Equal(t, strings.Repeat("x", 200), created.ParentPreview.Content)

	status, shown := h.do(http.MethodGet, h.messagePath(child.Id, "/reply"), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, string(raw), string(shown))

	status, raw = h.do(http.MethodGet, h.messagePath(parent.Id, "/replies"), "")
	require.Equal(t, http.StatusOK, status)
	children := decode[dto.MessageRepliesResponse](t, raw)
	assert.Equal(t, 1, children.ReplyCount)
	require.Len(t, children.Replies, 1)
	assert.Equal(t, child.Id, children.Replies[0].MessageId)

	status, raw = h.do(http.MethodGet, "/api/users/me/rooms/"+h.room.Id.String()+"/replies", "")
	require.Equal(t, http.StatusOK, status)
	meta := decode[dto.RoomReplyMetadataResponse](t, raw)
	assert.Contains(t, meta.Replies, child.Id.String())

	status, _ = h.do(http.MethodDelete, h.messagePath(child.Id, "/reply"), "")
	assert.Equal(t, http.StatusNoContent, status)
}

func TestRequestErrors(t *testing.T) {
	h := newHarness(t)
	msg := testutil.SeedMessage(t, h.db, h.room, h.member, "hello")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
		code   string
	}{
		{"missing token", http.MethodGet, h.messagePath(msg.Id, "/reactions"), "", "-", http.StatusUnauthorized, "unauthorized"},
		{"bad signature", http.MethodGet, h.messagePath(msg.Id, "/reactions"), "", signToken(t, "other", h.member, h.tenant), http.StatusUnauthorized, "unauthorized"},
		{"malformed room", http.MethodGet, "/api/users/me/rooms/nope/reactions", "", "", http.StatusBadRequest, "invalid-data"},
		{"unknown room", http.MethodGet, "/api/users/me/rooms/" + uuid.NewString() + "/reactions", "", "", http.StatusNotFound, "room-not-found"},
		{"unknown message", http.MethodGet, h.messagePath(uuid.New(), "/reactions"), "", "", http.StatusNotFound, "message-not-found"},
		{"emoji missing", http.MethodPost, h.messagePath(msg.Id, "/reactions"), `{}`, "", http.StatusBadRequest, "invalid-data"},
		{"emoji too long", http.MethodPost, h.messagePath(msg.Id, "/reactions"), `{"emoji":"abcdefghijk"}`, "", http.StatusBadRequest, "invalid-data"},
		{"parent not uuid", http.MethodPost, h.messagePath(msg.Id, "/reply"), `{"parent_message_uuid":"x"}`, "", http.StatusBadRequest, "invalid-data"},
		{"outsider adds", http.MethodPost, h.messagePath(msg.Id, "/reactions"), `{"emoji":"👍"}`, signToken(t, testSecret, uuid.New(), h.tenant), http.StatusNotFound, "room-not-found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := h.token
			switch tt.token {
			case "-":
				h.token = ""
			case "":
			default:
				h.token = tt.token
			}
			defer func() { h.token = saved }()

			status, raw := h.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, raw).ErrorId)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)
	msg := testutil.SeedMessage(t, h.db, h.room, h.member, "hello")
	status, _ := h.do(http.MethodPost, h.messagePath(msg.Id, "/reactions"), `{"emoji":"🎉"}`)
	require.Equal(t, http.StatusCreated, status)
	h.token = ""

	status, raw := h.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))

	status, raw = h.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `chatd_reactions_events_published_total{event="chatd_user_room_message_reaction_created"} 1`)
}
