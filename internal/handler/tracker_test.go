package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ascend/internal/model"
	"ascend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTrackerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(10000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TrackerEntry{}))

	h := NewTrackerHandler(service.NewTrackerService(db))

	r := gin.New()
	// stand-in for the JWT middleware: every request is member 1
	r.Use(func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Set("user_name", "Tester")
	})
	r.GET("/api/trackers", h.List)
	r.POST("/api/trackers", h.Create)
	r.POST("/api/trackers/upsert", h.Upsert)
	r.PUT("/api/trackers/:id", h.Update)
	r.DELETE("/api/trackers/:id", h.Delete)
	r.GET("/api/trackers/streak/:type", h.Streak)
	r.GET("/api/trackers/summary/:type", h.Summary)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrackerUpsertThenList(t *testing.T) {
	r := newTrackerRouter(t)

	w := doJSON(r, "POST", "/api/trackers/upsert",
		`{"type":"workout","date":"2026-08-31","value":{"completed":true,"type":"push","duration":45}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/api/trackers/upsert",
		`{"type":"workout","date":"2026-08-31","value":{"completed":true,"type":"legs","duration":60}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/trackers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), `"2026-08-31"`))
	assert.Contains(t, w.Body.String(), `legs`)
	assert.NotContains(t, w.Body.String(), `push`)
}

func TestTrackerListDateRange(t *testing.T) {
	r := newTrackerRouter(t)

	for _, d := range []string{"2026-08-29", "2026-08-30", "2026-08-31"} {
		w := doJSON(r, "POST", "/api/trackers",
			`{"type":"reading","date":"`+d+`","value":{"completed":true}}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, "GET", "/api/trackers?start=2026-08-30&end=2026-08-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "2026-08-29")
	assert.Contains(t, w.Body.String(), "2026-08-30")
	assert.Contains(t, w.Body.String(), "2026-08-31")
}

func TestTrackerUpdateAndDeleteMissing(t *testing.T) {
	r := newTrackerRouter(t)

	w := doJSON(r, "PUT", "/api/trackers/no-such-id", `{"value":{"completed":true}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "DELETE", "/api/trackers/no-such-id", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackerBadRequests(t *testing.T) {
	r := newTrackerRouter(t)

	w := doJSON(r, "POST", "/api/trackers/upsert", `{"type":"workout"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "PUT", "/api/trackers/x", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackerStreakEndpoint(t *testing.T) {
	r := newTrackerRouter(t)

	w := doJSON(r, "GET", "/api/trackers/streak/workout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak":0`)
}

func TestTrackerSummaryEndpoint(t *testing.T) {
	r := newTrackerRouter(t)

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	for _, d := range []string{yesterday, today} {
		w := doJSON(r, "POST", "/api/trackers",
			`{"type":"meditation","date":"`+d+`","value":{"completed":true,"minutes":15}}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, "GET", "/api/trackers/summary/meditation", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak":2`)
	assert.Contains(t, w.Body.String(), `"today_completed":true`)

	w = doJSON(r, "GET", "/api/trackers/summary/journal", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak":0`)
	assert.Contains(t, w.Body.String(), `"today":null`)
}

// A run longer than the summary week must still report its full length; the
// week window bounds the slice, not the streak.
func TestTrackerSummaryStreakBeyondWeek(t *testing.T) {
	r := newTrackerRouter(t)

	for i := 0; i < 10; i++ {
		d := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		w := doJSON(r, "POST", "/api/trackers",
			`{"type":"workout","date":"`+d+`","value":{"completed":true,"duration":30}}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, "GET", "/api/trackers/summary/workout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak":10`)

	w = doJSON(r, "GET", "/api/trackers/streak/workout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak":10`)
}

func TestTrackerUpsertUnknownTypeStored(t *testing.T) {
	r := newTrackerRouter(t)

	w := doJSON(r, "POST", "/api/trackers/upsert",
		`{"type":"cold_plunge","date":"2026-08-31","value":{"completed":true}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/trackers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cold_plunge"`)
}
