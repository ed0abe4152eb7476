package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/config"
	blogJob "bloghub-backend/internal/domains/blog/job"
	"bloghub-backend/internal/shared"
)

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Job: config.JobConfig{SweepEnabled: true, SweepCron: "* * * * *"}}

	w := httptest.NewRecorder()
	healthRouter(cfg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sweep_enabled":true`)

	w = httptest.NewRecorder()
	healthRouter(cfg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthChecker_DatabaseFailure(t *testing.T) {
	h := &HealthChecker{ping: func(context.Context) error { return errors.New("refused") }}
	assert.Error(t, h.checkDatabase())
}

func TestRegisterHandlers(t *testing.T) {
	reg := &HandlerRegistry{publishScheduled: blogJob.NewPublishScheduledHandler(nil)}
	mux := asynq.NewServeMux()
	reg.RegisterHandlers(mux)

	_, pattern := mux.Handler(asynq.NewTask(shared.TypePublishScheduledBlogs, nil))
	assert.Equal(t, shared.TypePublishScheduledBlogs, pattern)
}
