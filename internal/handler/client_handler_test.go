package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/middleware"
	"loyallight/backend/internal/model"
	"loyallight/backend/internal/repository"
	"loyallight/backend/internal/service"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// withOwner injects the authenticated owner the way the auth middleware does.
func withOwner(ownerID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithOwnerID(r.Context(), ownerID)))
		})
	}
}

type stubClientStore struct {
	clients map[uuid.UUID]*model.Client
}

func newStubClientStore() *stubClientStore {
	return &stubClientStore{clients: make(map[uuid.UUID]*model.Client)}
}

func (s *stubClientStore) List(ctx context.Context, ownerID uuid.UUID, q string, limit, offset int) ([]model.Client, error) {
	out := make([]model.Client, 0)
	for _, c := range s.clients {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubClientStore) GetByID(ctx context.Context, ownerID, clientID uuid.UUID) (*model.Client, error) {
	c, ok := s.clients[clientID]
	if !ok || c.OwnerID != ownerID {
		return nil, apperr.NotFound("client not found")
	}
	copied := *c
	return &copied, nil
}

func (s *stubClientStore) Create(ctx context.Context, client *model.Client) error {
	client.CreatedAt = time.Now()
	s.clients[client.ID] = client
	return nil
}

func (s *stubClientStore) Update(ctx context.Context, ownerID, clientID uuid.UUID, upd repository.ClientUpdate) (*model.Client, error) {
	c, ok := s.clients[clientID]
	if !ok || c.OwnerID != ownerID {
		return nil, apperr.NotFound("client not found")
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		c.Email = upd.Email
	}
	if upd.Phone != nil {
		c.Phone = upd.Phone
	}
	copied := *c
	return &copied, nil
}

func (s *stubClientStore) Delete(ctx context.Context, ownerID, clientID uuid.UUID) error {
	c, ok := s.clients[clientID]
	if !ok || c.OwnerID != ownerID {
		return apperr.NotFound("client not found")
	}
	delete(s.clients, clientID)
	return nil
}

func newClientRouter(ownerID uuid.UUID, store *stubClientStore) http.Handler {
	h := NewClientHandler(service.NewClientService(store), testLogger())

	router := chi.NewRouter()
	router.Use(withOwner(ownerID))
	router.Route("/v1/clients", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return router
}

func TestClientHandler_Create(t *testing.T) {
	ownerID := uuid.New()
	router := newClientRouter(ownerID, newStubClientStore())

	body := `{"name":"Alice Johnson","email":"alice@example.com","phone":"+7 900 123-45-67"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/clients", bytes.NewBufferString(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Alice Johnson", created.Name)
	require.NotNil(t, created.Email)
	assert.Equal(t, "alice@example.com", *created.Email)
}

func TestClientHandler_Create_Invalid(t *testing.T) {
	router := newClientRouter(uuid.New(), newStubClientStore())

	cases := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"   "}`},
		{"bad email", `{"name":"Alice","email":"not-an-email"}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/clients", bytes.NewBufferString(tc.body))
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "validation_error", body["code"])
		})
	}
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	router := newClientRouter(uuid.New(), newStubClientStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/clients/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["code"])
}

func TestClientHandler_Get_OtherOwner(t *testing.T) {
	store := newStubClientStore()
	clientID := uuid.New()
	store.clients[clientID] = &model.Client{ID: clientID, OwnerID: uuid.New(), Name: "Someone Else"}

	router := newClientRouter(uuid.New(), store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/clients/"+clientID.String(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientHandler_Get_BadID(t *testing.T) {
	router := newClientRouter(uuid.New(), newStubClientStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/clients/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientHandler_List_LimitValidation(t *testing.T) {
	router := newClientRouter(uuid.New(), newStubClientStore())

	for _, q := range []string{"limit=abc", "limit=0", "limit=500", "offset=-1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/clients?"+q, nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", q)
	}
}

func TestClientHandler_Update(t *testing.T) {
	ownerID := uuid.New()
	store := newStubClientStore()
	clientID := uuid.New()
	store.clients[clientID] = &model.Client{ID: clientID, OwnerID: ownerID, Name: "Alice"}

	router := newClientRouter(ownerID, store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/clients/"+clientID.String(),
		bytes.NewBufferString(`{"phone":"+7 900 000-00-00"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alice", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+7 900 000-00-00", *updated.Phone)
}

func TestClientHandler_Delete(t *testing.T) {
	ownerID := uuid.New()
	store := newStubClientStore()
	clientID := uuid.New()
	store.clients[clientID] = &model.Client{ID: clientID, OwnerID: ownerID, Name: "Alice"}

	router := newClientRouter(ownerID, store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/clients/"+clientID.String(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.clients)
}
