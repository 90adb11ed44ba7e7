package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lordiod/NMUstudenthousing/internal/model"
	"github.com/Lordiod/NMUstudenthousing/internal/mw"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

// apartmentForCaller resolves the caller's apartment through their
// student record and first lease.
func (h *Handler) apartmentForCaller(c *gin.Context) (*model.Apartment, bool) {
	session, ok := mw.CurrentSession(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Not logged in")
		return nil, false
	}

	ctx := c.Request.Context()
	student, err := h.store.StudentByID(ctx, session.UserID)
	if err != nil {
		c.String(http.StatusNotFound, "No lease found for the current user")
		return nil, false
	}

	leaseRow, err := h.store.LeaseForStudent(ctx, student.ID)
	if errors.Is(err, store.ErrNoLease) {
		c.String(http.StatusNotFound, "No lease found for the current user")
		return nil, false
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to look up lease")
		return nil, false
	}

	apartment, err := h.store.ApartmentByID(ctx, leaseRow.ApartmentID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to look up apartment")
		return nil, false
	}
	return apartment, true
}

// ShowMaintReq handles GET /maintreq.
func (h *Handler) ShowMaintReq(c *gin.Context) {
	apartment, ok := h.apartmentForCaller(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "maintreq.html", gin.H{"Apartment": apartment})
}

// SubmitMaintReq handles POST /maintreq.
func (h *Handler) SubmitMaintReq(c *gin.Context) {
	issue := c.PostForm("issue_description")
	if issue == "" {
		c.String(http.StatusBadRequest, "Issue description is required")
		return
	}

	apartment, ok := h.apartmentForCaller(c)
	if !ok {
		return
	}

	req := model.MaintenanceRequest{
		IssueDescription: issue,
		DateReported:     h.now().UTC(),
		Status:           model.StatusPending,
		ApartmentID:      apartment.ID,
	}
	if err := h.store.CreateMaintenanceRequest(c.Request.Context(), &req); err != nil {
		c.String(http.StatusInternalServerError, "Failed to file maintenance request")
		return
	}

	c.Redirect(http.StatusFound, "/requested")
}
