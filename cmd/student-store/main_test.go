package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-store/internal/config"
	"github.com/aanand-mishra/student-store/internal/http/middleware"
	"github.com/aanand-mishra/student-store/internal/storage/file"
	"github.com/aanand-mishra/student-store/internal/storage/jsonstore"
	"github.com/aanand-mishra/student-store/internal/storage/sqlite"
)

func testConfig(t *testing.T, driver, name string) *config.Config {
	cfg := &config.Config{
		Env:           "dev",
		StorageDriver: driver,
		StoragePath:   filepath.Join(t.TempDir(), name),
	}
	cfg.Metrics = config.Metrics{Enabled: true, Path: "/metrics"}
	return cfg
}

func TestOpenDocument(t *testing.T) {
	doc, err := openDocument(testConfig(t, config.DriverFile, "students.json"))
	require.NoError(t, err)
	assert.IsType(t, &file.File{}, doc)
	require.NoError(t, doc.Close())

	doc, err = openDocument(testConfig(t, config.DriverSQLite, "students.db"))
	require.NoError(t, err)
	assert.IsType(t, &sqlite.SQLite{}, doc)
	require.NoError(t, doc.Close())

	_, err = openDocument(testConfig(t, "carrier-pigeon", "x"))
	assert.Error(t, err)
}

func TestRouterEndToEnd(t *testing.T) {
	for _, driver := range []string{config.DriverFile, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver, "students.data")
			doc, err := openDocument(cfg)
			require.NoError(t, err)
			defer doc.Close()

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			srv := httptest.NewServer(newRouter(cfg, log, jsonstore.New(doc)))
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/students", "application/json", strings.NewReader(
				`{"firstName":"Ann","lastName":"Lee","course":"CS","year":"First Year","enrolled":true}`))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

			resp, err = http.Get(srv.URL + "/api/students/1")
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), `"firstName":"Ann"`)

			resp, err = http.Get(srv.URL + "/metrics")
			require.NoError(t, err)
			body, _ = io.ReadAll(resp.Body)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), `route="POST /students"`)
		})
	}
}

func TestRouterWithoutMetrics(t *testing.T) {
	cfg := testConfig(t, config.DriverFile, "students.json")
	cfg.Metrics.Enabled = false
	doc, err := openDocument(cfg)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := newRouter(cfg, log, jsonstore.New(doc))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{"dev", "staging", "prod", "other"} {
		assert.NotNil(t, setupLogger(env), env)
	}
}
