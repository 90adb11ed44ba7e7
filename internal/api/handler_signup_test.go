package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lordiod/NMUstudenthousing/internal/lease"
	"github.com/Lordiod/NMUstudenthousing/internal/model"
)

func TestSignupAssignsApartmentAndLease(t *testing.T) {
	app := newTestApp(t)
	apt := app.seedApartment(t, model.LocationMale, 2)

	w := app.postForm("/signup", signupForm("12345", "Male"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/thankyou", w.Header().Get("Location"))

	var updated model.Apartment
	require.NoError(t, app.db.First(&updated, apt.ID).Error)
	assert.Equal(t, 3, updated.LeaseCount)

	var leaseRow model.Lease
	require.NoError(t, app.db.Where("student_id = ?", 12345).First(&leaseRow).Error)
	assert.Equal(t, apt.ID, leaseRow.ApartmentID)

	expectedStart, expectedEnd := lease.Term(time.Now(), app.cfg.Lease)
	assert.Equal(t, expectedStart, leaseRow.StartDate.UTC())
	assert.Equal(t, expectedEnd, leaseRow.EndDate.UTC())

	// The account password is stored hashed.
	var user model.User
	require.NoError(t, app.db.First(&user, 12345).Error)
	assert.NotEqual(t, "secret1", user.Password)
}

func TestSignupRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	app.seedApartment(t, model.LocationMale, 0)

	t.Run("non-numeric student id", func(t *testing.T) {
		w := app.postForm("/signup", signupForm("abc", "Male"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Student ID must be a number", w.Body.String())
	})

	t.Run("password mismatch", func(t *testing.T) {
		form := signupForm("12345", "Male")
		form.Set("conpassword", "different")
		w := app.postForm("/signup", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Passwords do not match", w.Body.String())
	})

	t.Run("duplicate student id", func(t *testing.T) {
		w := app.postForm("/signup", signupForm("777", "Male"))
		require.Equal(t, http.StatusFound, w.Code)

		w = app.postForm("/signup", signupForm("777", "Male"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Student ID already exists", w.Body.String())
	})

	// Failed validation must leave no rows behind.
	var users int64
	app.db.Model(&model.User{}).Count(&users)
	assert.Equal(t, int64(1), users) // only the successful signup
}

func TestSignupNoApartmentAvailable(t *testing.T) {
	app := newTestApp(t)
	// Only a full apartment in the female block.
	app.seedApartment(t, model.LocationFemale, 3)

	w := app.postForm("/signup", signupForm("500", "Female"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No available apartments", w.Body.String())

	var users, students, leases int64
	app.db.Model(&model.User{}).Count(&users)
	app.db.Model(&model.Student{}).Count(&students)
	app.db.Model(&model.Lease{}).Count(&leases)
	assert.Zero(t, users)
	assert.Zero(t, students)
	assert.Zero(t, leases)
}

func TestSignupGenderSelectsBlock(t *testing.T) {
	app := newTestApp(t)
	maleApt := app.seedApartment(t, model.LocationMale, 0)
	femaleApt := app.seedApartment(t, model.LocationFemale, 0)

	w := app.postForm("/signup", signupForm("600", "female"))
	require.Equal(t, http.StatusFound, w.Code)

	var updated model.Apartment
	require.NoError(t, app.db.First(&updated, femaleApt.ID).Error)
	assert.Equal(t, 1, updated.LeaseCount)

	updated = model.Apartment{}
	require.NoError(t, app.db.First(&updated, maleApt.ID).Error)
	assert.Equal(t, 0, updated.LeaseCount)
}
