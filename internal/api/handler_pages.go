package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home handles GET /.
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// Policies handles GET /policies.
func (h *Handler) Policies(c *gin.Context) {
	c.HTML(http.StatusOK, "policies.html", nil)
}

// Eligibility handles GET /eligibility.
func (h *Handler) Eligibility(c *gin.Context) {
	c.HTML(http.StatusOK, "eligibility.html", nil)
}

// ThankYou handles GET /thankyou.
func (h *Handler) ThankYou(c *gin.Context) {
	c.HTML(http.StatusOK, "thankyou.html", nil)
}

// Requested handles GET /requested.
func (h *Handler) Requested(c *gin.Context) {
	c.HTML(http.StatusOK, "requested.html", nil)
}
