package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return &buf
}

func TestMiddleware_LogsRequest(t *testing.T) {
	buf := captureLogs(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/startups/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/startups/x?draft=1", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "GET", line["method"])
	require.Equal(t, "/startups/x?draft=1", line["path"])
	require.EqualValues(t, 404, line["status"])
	require.Equal(t, "request", line["message"])
}

func TestInit_Level(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	Init("production", "debug")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("production", "nonsense")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
