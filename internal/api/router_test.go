package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/config"
	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/db"
	"github.com/Lordiod/NMUstudenthousing/internal/model"
	"github.com/Lordiod/NMUstudenthousing/internal/mw"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *auth.Sessions
	cfg      *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 1,
		},
		Lease: config.LeaseConfig{CutoffMonth: 12, CutoffDay: 31},
		Auth:  config.AuthConfig{Secret: "test-secret", SessionTTLMinutes: 60},
	}

	sessions := auth.NewSessions(cfg.Auth.Secret, time.Hour)
	router := NewRouter(store.NewGormStore(gormDB), cfg, sessions)

	return &testApp{router: router, db: gormDB, sessions: sessions, cfg: cfg}
}

func (a *testApp) seedApartment(t *testing.T, location string, leaseCount int) model.Apartment {
	t.Helper()
	building := model.Building{BuildingNum: 1, Location: location, Capacity: 10, TotalFloors: 4}
	require.NoError(t, a.db.Create(&building).Error)
	apt := model.Apartment{AptNum: 101, Floor: 1, BuildingID: building.ID, LeaseCount: leaseCount}
	require.NoError(t, a.db.Create(&apt).Error)
	return apt
}

func (a *testApp) seedAdmin(t *testing.T, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.SeedAdmin(a.db, hash))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: mw.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postFormWithSession(path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: mw.SessionCookie, Value: cookie})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func signupForm(studentID, gender string) url.Values {
	return url.Values{
		"studentid":   {studentID},
		"firstname":   {"Ada"},
		"secondname":  {"Hassan"},
		"gender":      {gender},
		"password":    {"secret1"},
		"conpassword": {"secret1"},
		"phone":       {"0100000000"},
		"faculty":     {"Engineering"},
		"year":        {"2"},
	}
}
