package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/lease"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

// ShowSignup handles GET /signup.
func (h *Handler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", nil)
}

// Signup handles POST /signup. Input is validated before any write;
// the assignment flow itself is transactional, so a signup either
// persists user, student and lease together or not at all.
func (h *Handler) Signup(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.PostForm("studentid"), 10, 64)
	if err != nil || studentID <= 0 {
		c.String(http.StatusBadRequest, "Student ID must be a number")
		return
	}

	password := c.PostForm("password")
	if password != c.PostForm("conpassword") {
		c.String(http.StatusBadRequest, "Passwords do not match")
		return
	}

	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		c.String(http.StatusBadRequest, "Year must be a number")
		return
	}

	taken, err := h.store.StudentIDTaken(c.Request.Context(), studentID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Signup failed")
		return
	}
	if taken {
		c.String(http.StatusBadRequest, "Student ID already exists")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		c.String(http.StatusInternalServerError, "Signup failed")
		return
	}

	start, end := lease.Term(h.now(), h.leaseCfg)
	reg := store.Registration{
		StudentID:    studentID,
		FirstName:    c.PostForm("firstname"),
		SecondName:   c.PostForm("secondname"),
		Gender:       c.PostForm("gender"),
		PasswordHash: hash,
		Phone:        c.PostForm("phone"),
		Faculty:      c.PostForm("faculty"),
		Year:         year,
		LeaseStart:   start,
		LeaseEnd:     end,
	}

	err = h.store.RegisterStudent(c.Request.Context(), reg)
	switch {
	case errors.Is(err, store.ErrNoApartment):
		c.String(http.StatusBadRequest, "No available apartments")
	case errors.Is(err, store.ErrDuplicateStudent):
		c.String(http.StatusBadRequest, "Student ID already exists")
	case err != nil:
		c.String(http.StatusInternalServerError, "Signup failed")
	default:
		c.Redirect(http.StatusFound, "/thankyou")
	}
}
