package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	up := NewHealthHandler(stubPinger{})
	down := NewHealthHandler(stubPinger{err: errors.New("dial tcp 10.0.0.7:3306: connect: connection refused")})

	rec := serve(t, http.MethodGet, "/health", "/health", "", "", down.Liveness)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, http.MethodGet, "/health/ready", "/health/ready", "", "", up.Readiness)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, http.MethodGet, "/health/ready", "/health/ready", "", "", down.Readiness)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decodeBody(t, rec)["status"])
	assert.Contains(t, rec.Body.String(), `"error":"unreachable"`)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}
