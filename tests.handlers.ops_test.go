package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestGetStatisticsHandler_ConcurrentRecording ensures the statistics
// handler can be polled while the recorder middleware updates the
// per-code counters from parallel requests.
func TestGetStatisticsHandler_ConcurrentRecording(t *testing.T) {
	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), nil, nil)

	recorded := api.StatsRecorderMiddleware(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			recorded(w, httptest.NewRequest(http.MethodGet, "/api/books", nil), nil)
		}()
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			api.GetStatistics(w, httptest.NewRequest(http.MethodGet, "/ops/stats", nil), nil)
		}()
	}
	wg.Wait()

	w := httptest.NewRecorder()
	api.GetStatistics(w, httptest.NewRequest(http.MethodGet, "/ops/stats", nil), nil)
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	m := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(data, &m))
	status, ok := m["status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(50), status["200"])
}
