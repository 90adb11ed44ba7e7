package api

import (
	"time"

	"github.com/Lordiod/NMUstudenthousing/config"
	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

// Handler holds shared dependencies for the public API handlers.
type Handler struct {
	store    store.Store
	sessions *auth.Sessions
	leaseCfg config.LeaseConfig

	now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sessions *auth.Sessions, leaseCfg config.LeaseConfig) *Handler {
	return &Handler{
		store:    s,
		sessions: sessions,
		leaseCfg: leaseCfg,
		now:      time.Now,
	}
}
