package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

type sessionServiceMock struct {
	created  dto.CreateSessionRequest
	dispatch dto.SessionActionRequest
	err      error
}

func (m *sessionServiceMock) view(id string) *dto.SessionView {
	return &dto.SessionView{
		ID:         id,
		Filters:    models.DefaultFilterSpec(),
		Pagination: models.PageMetadata{CurrentPage: 1, ItemsPerPage: 12, TotalItems: 3, TotalPages: 1},
	}
}

func (m *sessionServiceMock) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionView, error) {
	m.created = req
	return m.view("s-1"), m.err
}

func (m *sessionServiceMock) Get(ctx context.Context, id string) (*dto.SessionView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view(id), nil
}

func (m *sessionServiceMock) Dispatch(ctx context.Context, id string, req dto.SessionActionRequest) (*dto.SessionView, error) {
	m.dispatch = req
	if m.err != nil {
		return nil, m.err
	}
	return m.view(id), nil
}

func TestSessionHandlerCreateWithoutBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &sessionServiceMock{}
	h := NewSessionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sessions", nil)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.TotalItems)
}

func TestSessionHandlerCreateWithSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &sessionServiceMock{}
	h := NewSessionHandler(mockSvc)

	c, w := newGinContext(http.MethodPost, "/sessions", []byte(`{"itemsPerPage":6}`))
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 6, mockSvc.created.ItemsPerPage)
}

func TestSessionHandlerDispatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &sessionServiceMock{}
	h := NewSessionHandler(mockSvc)

	c, w := newGinContext(http.MethodPost, "/sessions/s-1/actions", []byte(`{"type":"set_styles","payload":{"styles":["Studio"]}}`))
	c.Params = gin.Params{{Key: "id", Value: "s-1"}}
	h.Dispatch(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "set_styles", mockSvc.dispatch.Type)
	assert.Equal(t, []string{"Studio"}, mockSvc.dispatch.Payload.Styles)
}

func TestSessionHandlerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSessionHandler(&sessionServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "session not found")})

	c, w := newGinContext(http.MethodGet, "/sessions/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newGinContext(http.MethodPost, "/sessions/missing/actions", []byte(`[]`))
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Dispatch(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
