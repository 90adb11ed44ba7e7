package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/config"
	"github.com/Lordiod/NMUstudenthousing/internal/api"
	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/db"
	"github.com/Lordiod/NMUstudenthousing/internal/model"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

// TestHousingLifecycle walks the whole flow end to end: an admin
// prepares a building and apartment through the back-office, a
// student signs up and is assigned a lease, logs in, and files a
// maintenance request the admin can then see and progress.
func TestHousingLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 1,
		},
		Lease: config.LeaseConfig{CutoffMonth: 12, CutoffDay: 31},
		Auth:  config.AuthConfig{Secret: "integration-secret", SessionTTLMinutes: 60},
	}

	adminHash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, db.SeedAdmin(testDB, adminHash))

	sessions := auth.NewSessions(cfg.Auth.Secret, time.Hour)
	router := api.NewRouter(store.NewGormStore(testDB), cfg, sessions)

	postForm := func(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	doJSON := func(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	sessionCookie := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == "housing_session" && c.Value != "" {
				return c
			}
		}
		return nil
	}

	// --- Admin logs in and prepares housing stock ---
	var adminCookie *http.Cookie
	t.Run("admin prepares stock", func(t *testing.T) {
		w := postForm("/login", url.Values{"studentid": {"0"}, "password": {"admin123"}}, nil)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/admin/", w.Header().Get("Location"))
		adminCookie = sessionCookie(w)
		require.NotNil(t, adminCookie)

		w = doJSON(http.MethodPost, "/admin/buildings", map[string]any{
			"building_num": 1, "location": model.LocationMale,
			"capacity": 2, "total_floors": 4,
		}, adminCookie)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = doJSON(http.MethodPost, "/admin/apartments", map[string]any{
			"apt_num": 101, "floor": 1, "building_id": 1,
		}, adminCookie)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	// --- Student signs up and is assigned the apartment ---
	t.Run("student signup assigns lease", func(t *testing.T) {
		w := postForm("/signup", url.Values{
			"studentid":   {"20230042"},
			"firstname":   {"Nour"},
			"secondname":  {"Adel"},
			"gender":      {"Male"},
			"password":    {"pass1234"},
			"conpassword": {"pass1234"},
			"phone":       {"0100000000"},
			"faculty":     {"Engineering"},
			"year":        {"1"},
		}, nil)
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		require.Equal(t, "/thankyou", w.Header().Get("Location"))

		var apt model.Apartment
		require.NoError(t, testDB.First(&apt, "apt_num = ?", 101).Error)
		assert.Equal(t, 1, apt.LeaseCount)

		var leaseRow model.Lease
		require.NoError(t, testDB.Where("student_id = ?", 20230042).First(&leaseRow).Error)
		assert.Equal(t, apt.ID, leaseRow.ApartmentID)
	})

	// --- Student logs in and files a maintenance request ---
	t.Run("student files maintenance request", func(t *testing.T) {
		w := postForm("/login", url.Values{"studentid": {"20230042"}, "password": {"pass1234"}}, nil)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/maintreq", w.Header().Get("Location"))
		studentCookie := sessionCookie(w)
		require.NotNil(t, studentCookie)

		w = postForm("/maintreq", url.Values{"issue_description": {"window does not close"}}, studentCookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/requested", w.Header().Get("Location"))

		var req model.MaintenanceRequest
		require.NoError(t, testDB.First(&req).Error)
		assert.Equal(t, model.StatusPending, req.Status)
	})

	// --- Admin progresses the request through the grid ---
	t.Run("admin progresses request", func(t *testing.T) {
		var req model.MaintenanceRequest
		require.NoError(t, testDB.First(&req).Error)

		w := doJSON(http.MethodPut, "/admin/maintenance_requests/1", map[string]any{
			"status": model.StatusInProgress,
		}, adminCookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.NoError(t, testDB.First(&req, req.ID).Error)
		assert.Equal(t, model.StatusInProgress, req.Status)
	})
}
