package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"pitchboard/pkg/boundary"
	"pitchboard/pkg/config"
	"pitchboard/pkg/reporting"
	"pitchboard/pkg/testhelpers"
)

func TestInstallMiddleware_LogsCrashedRequests(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	gin.SetMode(gin.TestMode)
	transport := testhelpers.NewRecordingTransport()
	reporter, err := reporting.New(reporting.Options{DSN: testhelpers.TestDSN, Environment: "production", Transport: transport})
	require.NoError(t, err)

	router := gin.New()
	installMiddleware(router, boundary.NewHandler(reporter, nil, nil, boundary.Options{}), &config.Config{
		CORS: config.CORSSettings{AllowedOrigins: []string{"*"}},
	})
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/boom", "/ok"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	statuses := map[string]float64{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		if line["message"] == "request" {
			statuses[line["path"].(string)] = line["status"].(float64)
		}
	}

	require.Equal(t, map[string]float64{"/boom": 500, "/ok": 204}, statuses)
	require.Len(t, transport.Events(), 1)
}
