package post

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedSvc records the limit the handler resolved from the query.
type pagedSvc struct {
	Service
	gotLimit int
}

func (s *pagedSvc) List(_ Filter, limit, _ int) ([]ListRow, error) {
	s.gotLimit = limit
	return nil, nil
}

func TestListClampsPageSize(t *testing.T) {
	svc := &pagedSvc{}
	h := NewHandler(svc, nil, nil, 20, 100)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts?limit=10000", nil)
	require.NoError(t, h.List(rec, req))
	assert.Equal(t, 100, svc.gotLimit)

	req = httptest.NewRequest(http.MethodGet, "/posts?limit=-5", nil)
	require.NoError(t, h.List(rec, req))
	assert.Equal(t, 20, svc.gotLimit)

	req = httptest.NewRequest(http.MethodGet, "/posts", nil)
	require.NoError(t, h.List(rec, req))
	assert.Equal(t, 20, svc.gotLimit)
}
