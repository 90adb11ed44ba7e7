package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/mw"
)

// ShowLogin handles GET /login.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// Login handles POST /login. Credentials are the numeric account ID
// and password; admins land on the back-office, students on the
// maintenance-request page.
func (h *Handler) Login(c *gin.Context) {
	userID, err := strconv.ParseInt(c.PostForm("studentid"), 10, 64)
	if err != nil {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	password := c.PostForm("password")

	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusInternalServerError, "Login failed")
			return
		}
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.CheckPassword(user.Password, password) {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.sessions.Mint(user.ID, user.IsAdmin)
	if err != nil {
		c.String(http.StatusInternalServerError, "Login failed")
		return
	}
	c.SetCookie(mw.SessionCookie, token, 0, "/", "", false, true)

	if user.IsAdmin {
		c.Redirect(http.StatusFound, "/admin/")
		return
	}
	c.Redirect(http.StatusFound, "/maintreq")
}

// Logout handles GET /logout.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(mw.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
