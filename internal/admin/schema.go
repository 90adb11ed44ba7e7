// Package admin implements the back-office: a generic CRUD grid over
// every entity, driven by per-entity schema descriptors.
package admin

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/internal/model"
)

// Errors surfaced by entity hooks.
var (
	// ErrCapacityExceeded means creating the apartment would push the
	// building past its declared capacity.
	ErrCapacityExceeded = errors.New("building has reached its full capacity")
	// ErrInUse means the row is still referenced and may not be
	// deleted.
	ErrInUse = errors.New("record is still referenced by other records")
)

// FieldKind classifies how a grid field is edited and validated.
type FieldKind string

const (
	KindString   FieldKind = "string"
	KindInt      FieldKind = "int"
	KindBool     FieldKind = "bool"
	KindDate     FieldKind = "date"
	KindChoice   FieldKind = "choice"
	KindRef      FieldKind = "ref"
	KindPassword FieldKind = "password"
)

// Field describes one editable column of an entity.
type Field struct {
	Name     string    `json:"name"` // column name
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Ref      string    `json:"ref,omitempty"`       // referenced entity, for KindRef
	RefLabel string    `json:"ref_label,omitempty"` // column shown in the FK picker
	Choices  []string  `json:"choices,omitempty"`
}

// Entity describes one grid: its table, editable fields and hooks.
type Entity struct {
	Name   string
	Table  string
	Model  func() any
	Fields []Field

	// beforeSave runs inside the write transaction after coercion; it
	// may mutate values.
	beforeSave func(tx *gorm.DB, values map[string]any, isCreate bool) error
	// beforeDelete enforces referential restrictions.
	beforeDelete func(tx *gorm.DB, id int64) error
}

// Registry returns the entity descriptors keyed by URL name.
func Registry() map[string]*Entity {
	return map[string]*Entity{
		"users": {
			Name:  "users",
			Table: "users",
			Model: func() any { return &model.User{} },
			Fields: []Field{
				// Account IDs are app-assigned: students share their
				// ID with their student record.
				{Name: "id", Label: "ID", Kind: KindInt, Required: true},
				{Name: "username", Label: "Username", Kind: KindString, Required: true},
				{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
				{Name: "is_admin", Label: "Admin", Kind: KindBool},
			},
		},
		"students": {
			Name:  "students",
			Table: "students",
			Model: func() any { return &model.Student{} },
			Fields: []Field{
				{Name: "student_id", Label: "Student ID", Kind: KindInt, Required: true},
				{Name: "first_name", Label: "First Name", Kind: KindString, Required: true},
				{Name: "second_name", Label: "Second Name", Kind: KindString, Required: true},
				{Name: "gender", Label: "Gender", Kind: KindChoice, Required: true, Choices: []string{"Male", "Female"}},
				{Name: "phone", Label: "Phone", Kind: KindString, Required: true},
				{Name: "faculty", Label: "Faculty", Kind: KindString, Required: true},
				{Name: "year", Label: "Year", Kind: KindInt, Required: true},
			},
			beforeSave: func(tx *gorm.DB, values map[string]any, isCreate bool) error {
				// Student rows share their primary key with the user
				// account, so an admin-created student takes its
				// external ID as the row ID.
				if isCreate {
					if _, ok := values["id"]; !ok {
						values["id"] = values["student_id"]
					}
				}
				return nil
			},
			beforeDelete: restrictDelete("leases", "student_id"),
		},
		"buildings": {
			Name:  "buildings",
			Table: "buildings",
			Model: func() any { return &model.Building{} },
			Fields: []Field{
				{Name: "building_num", Label: "Building Number", Kind: KindInt, Required: true},
				{Name: "location", Label: "Location", Kind: KindChoice, Required: true, Choices: []string{model.LocationMale, model.LocationFemale}},
				{Name: "capacity", Label: "Capacity", Kind: KindInt, Required: true},
				{Name: "total_floors", Label: "Total Floors", Kind: KindInt, Required: true},
			},
			beforeDelete: restrictDelete("apartments", "building_id"),
		},
		"apartments": {
			Name:  "apartments",
			Table: "apartments",
			Model: func() any { return &model.Apartment{} },
			Fields: []Field{
				{Name: "apt_num", Label: "Apartment Number", Kind: KindInt, Required: true},
				{Name: "floor", Label: "Floor", Kind: KindInt, Required: true},
				{Name: "building_id", Label: "Building", Kind: KindRef, Required: true, Ref: "buildings", RefLabel: "building_num"},
				{Name: "lease_count", Label: "Active Leases", Kind: KindInt},
			},
			beforeSave:   apartmentCapacityCheck,
			beforeDelete: restrictDeleteMulti(map[string]string{"leases": "apartment_id", "maintenance_requests": "apartment_id"}),
		},
		"leases": {
			Name:  "leases",
			Table: "leases",
			Model: func() any { return &model.Lease{} },
			Fields: []Field{
				{Name: "student_id", Label: "Student", Kind: KindRef, Required: true, Ref: "students", RefLabel: "first_name"},
				{Name: "apartment_id", Label: "Apartment", Kind: KindRef, Required: true, Ref: "apartments", RefLabel: "apt_num"},
				{Name: "start_date", Label: "Start Date", Kind: KindDate, Required: true},
				{Name: "end_date", Label: "End Date", Kind: KindDate, Required: true},
				{Name: "terms", Label: "Terms and Conditions", Kind: KindString},
			},
		},
		"maintenance_requests": {
			Name:  "maintenance_requests",
			Table: "maintenance_requests",
			Model: func() any { return &model.MaintenanceRequest{} },
			Fields: []Field{
				{Name: "issue_description", Label: "Issue Description", Kind: KindString, Required: true},
				{Name: "status", Label: "Status", Kind: KindChoice, Required: true, Choices: []string{model.StatusPending, model.StatusInProgress, model.StatusCompleted}},
				{Name: "apartment_id", Label: "Apartment", Kind: KindRef, Required: true, Ref: "apartments", RefLabel: "apt_num"},
			},
			beforeSave: func(tx *gorm.DB, values map[string]any, isCreate bool) error {
				if isCreate {
					if _, ok := values["date_reported"]; !ok {
						values["date_reported"] = time.Now().UTC()
					}
				}
				return nil
			},
		},
	}
}

// apartmentCapacityCheck rejects apartment creation once the owning
// building holds as many apartments as its declared capacity.
func apartmentCapacityCheck(tx *gorm.DB, values map[string]any, isCreate bool) error {
	if raw, ok := values["lease_count"]; ok {
		if n, isInt := raw.(int64); isInt && (n < 0 || n > model.MaxLeases) {
			return fmt.Errorf("%w: lease_count must be between 0 and %d", errInvalid, model.MaxLeases)
		}
	}
	if !isCreate {
		return nil
	}
	buildingID, ok := values["building_id"]
	if !ok {
		return fmt.Errorf("building_id is required")
	}

	var building model.Building
	if err := tx.First(&building, "id = ?", buildingID).Error; err != nil {
		return fmt.Errorf("failed to load building: %w", err)
	}

	var count int64
	if err := tx.Model(&model.Apartment{}).
		Where("building_id = ?", buildingID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count apartments: %w", err)
	}
	if count >= int64(building.Capacity) {
		return ErrCapacityExceeded
	}
	return nil
}

// restrictDelete blocks deletion while rows in table still reference
// the target through column.
func restrictDelete(table, column string) func(tx *gorm.DB, id int64) error {
	return restrictDeleteMulti(map[string]string{table: column})
}

func restrictDeleteMulti(refs map[string]string) func(tx *gorm.DB, id int64) error {
	return func(tx *gorm.DB, id int64) error {
		for table, column := range refs {
			var count int64
			if err := tx.Table(table).Where(column+" = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check references in %s: %w", table, err)
			}
			if count > 0 {
				return ErrInUse
			}
		}
		return nil
	}
}
