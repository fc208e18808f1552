package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kimjbstar/korea-public-village-forecast/internal/config"
	"github.com/kimjbstar/korea-public-village-forecast/internal/grid"
)

const observationBody = `{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL_SERVICE"},
"body":{"dataType":"JSON","items":{"item":[
{"baseDate":"20240426","baseTime":"1300","category":"T1H","nx":60,"ny":127,"obsrValue":"18.2"}
]},"pageNo":1,"numOfRows":1024,"totalCount":1}}}`

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(observationBody))
	}))
	t.Cleanup(provider.Close)

	cfg := config.NewDefaultConfig()
	cfg.Forecast.APIKey = apiKey
	cfg.Forecast.BaseURL = provider.URL

	return NewServer(cfg, zaptest.NewLogger(t), nil)
}

func do(s *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServer_Observation(t *testing.T) {
	s := newTestServer(t, "test-key")

	w := do(s, "/v1/observation?lat=37.5665&lng=126.978&time=202404261430")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var res struct {
		BaseDate string `json:"baseDate"`
		Items    []struct {
			Category string `json:"category"`
			Value    string `json:"value"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "2024-04-26 13:00", res.BaseDate)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "T1H", res.Items[0].Category)
	assert.Equal(t, "18.2", res.Items[0].Value)
}

func TestServer_Grid(t *testing.T) {
	s := newTestServer(t, "test-key")

	w := do(s, "/v1/grid?lat=35.1796&lng=129.0756")

	require.Equal(t, http.StatusOK, w.Code)
	var p grid.Point
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, grid.Point{NX: 98, NY: 76}, p)
}

func TestServer_MissingCredential(t *testing.T) {
	s := newTestServer(t, "")

	assert.Equal(t, http.StatusServiceUnavailable, do(s, "/v1/observation?lat=37.5665&lng=126.978").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(s, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, do(s, "/health/live").Code)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, "test-key")

	require.Equal(t, http.StatusOK, do(s, "/v1/observation?lat=37.5665&lng=126.978").Code)

	w := do(s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `village_forecast_provider_requests_total{operation="getUltraSrtNcst",outcome="success"} 1`)
	assert.Contains(t, body, `village_forecast_http_requests_total{method="GET",route="/v1/observation",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
