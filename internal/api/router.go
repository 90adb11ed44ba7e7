package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/Lordiod/NMUstudenthousing/config"
	"github.com/Lordiod/NMUstudenthousing/internal/admin"
	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/mw"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, sessions *auth.Sessions) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(PageTemplates())

	handler := NewHandler(s, sessions, cfg.Lease)

	r.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))

	// Public static pages get a response cache; they never vary.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/", handler.Home)
	r.GET("/policies", caching, handler.Policies)
	r.GET("/eligibility", caching, handler.Eligibility)

	r.GET("/login", handler.ShowLogin)
	r.POST("/login", handler.Login)
	r.GET("/signup", handler.ShowSignup)
	r.POST("/signup", handler.Signup)

	authed := r.Group("", mw.RequireSession(sessions))
	{
		authed.GET("/logout", handler.Logout)
		authed.GET("/maintreq", handler.ShowMaintReq)
		authed.POST("/maintreq", handler.SubmitMaintReq)
		authed.GET("/thankyou", handler.ThankYou)
		authed.GET("/requested", handler.Requested)
	}

	backOffice := r.Group("/admin", mw.RequireSession(sessions), mw.RequireAdmin())
	admin.Register(backOffice, s.DB())

	return r
}
