package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/bikeshare-eda/internal/config"
	"github.com/jengzang/bikeshare-eda/internal/dataset"
	"github.com/jengzang/bikeshare-eda/internal/features"
	"github.com/jengzang/bikeshare-eda/internal/logging"
	"github.com/jengzang/bikeshare-eda/internal/middleware"
)

const fixtureCSV = `datetime,season,holiday,workingday,weather,temp,atemp,humidity,windspeed,casual,registered,count
2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16
2011-01-01 01:00:00,1,0,0,1,9.02,13.635,80,0,8,32,40
2011-01-03 13:00:00,1,1,0,2,12.3,15.15,45,12.998,20,80,100
2011-05-02 05:00:00,2,0,1,2,20.5,24.24,60,7.0015,,40,45
2011-05-02 13:00:00,2,0,1,3,26.24,30.3,39,19.0012,60,150,210
2011-08-15 17:00:00,3,0,1,1,32.8,37.12,30,8.9981,90,400,490
2011-11-20 08:00:00,4,0,0,4,13.12,17.425,93,,5,60,65
2011-11-21 17:00:00,4,0,1,1,14.76,17.425,50,11.0014,25,380,405
`

type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T, renderLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := dataset.ReadCSV(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	res, err := dataset.FromRecords(raw)
	require.NoError(t, err)
	table, err := features.Derive(res.Records, features.Options{})
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.RenderLimit = renderLimit
	logger := logging.NewWithWriter(&bytes.Buffer{}, "error", "text")
	return SetupRouter(cfg, logger, NewServices(cfg, table, res.Frame))
}

func get(t *testing.T, r http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, 30)
	w, _ := get(t, r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestDatasetEndpoints(t *testing.T) {
	r := setupRouter(t, 30)

	w, env := get(t, r, "/api/v1/dataset/summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, env.RequestID)
	var summary struct {
		Rows       int `json:"rows"`
		RawColumns int `json:"raw_columns"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 8, summary.Rows)
	assert.Equal(t, 12, summary.RawColumns)

	w, env = get(t, r, "/api/v1/dataset/head")
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 3)

	w, env = get(t, r, "/api/v1/dataset/head?n=5")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 5)

	w, _ = get(t, r, "/api/v1/dataset/head?n=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, r, "/api/v1/dataset/head?n=-2")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpoints(t *testing.T) {
	r := setupRouter(t, 30)

	w, env := get(t, r, "/api/v1/stats/correlation")
	require.Equal(t, http.StatusOK, w.Code)
	var corr struct {
		Names  []string     `json:"names"`
		Values [][]*float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &corr))
	assert.Len(t, corr.Names, 7)
	assert.Len(t, corr.Values, 7)

	w, _ = get(t, r, "/api/v1/stats/describe")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = get(t, r, "/api/v1/stats/box?by=weather")
	require.Equal(t, http.StatusOK, w.Code)
	var boxes []struct {
		Category string `json:"category"`
		N        int    `json:"n"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &boxes))
	require.Len(t, boxes, 4)
	assert.Equal(t, "1", boxes[0].Category)
	assert.Equal(t, 4, boxes[0].N)

	w, _ = get(t, r, "/api/v1/stats/box?by=nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChartEndpoints(t *testing.T) {
	r := setupRouter(t, 30)

	w, env := get(t, r, "/api/v1/charts")
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 9)

	w, _ = get(t, r, "/api/v1/charts/correlation")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w, _ = get(t, r, "/api/v1/charts/boxplot?format=svg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))

	w, _ = get(t, r, "/api/v1/charts/pie")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = get(t, r, "/api/v1/charts/correlation?format=bmp")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChartRenderRateLimit(t *testing.T) {
	r := setupRouter(t, 1)

	w, _ := get(t, r, "/api/v1/charts/correlation")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := get(t, r, "/api/v1/charts/correlation")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, http.StatusTooManyRequests, env.Code)

	// listing is not limited
	w, _ = get(t, r, "/api/v1/charts")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(t, 30)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/charts", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
