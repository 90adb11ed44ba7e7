package admin

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/internal/auth"
)

// Grid errors mapped to HTTP statuses.
var (
	errInvalid  = errors.New("invalid value")
	errNotFound = errors.New("not found")
)

// Handler serves the generic CRUD grid for all registered entities.
type Handler struct {
	db       *gorm.DB
	registry map[string]*Entity
}

// Register mounts the back-office routes on the given group. The
// group is expected to carry session and admin middleware already.
func Register(rg *gin.RouterGroup, db *gorm.DB) {
	h := &Handler{db: db, registry: Registry()}

	rg.GET("/", h.Index)
	rg.GET("/:entity", h.List)
	rg.GET("/:entity/schema", h.Schema)
	rg.POST("/:entity", h.Create)
	rg.PUT("/:entity/:id", h.Update)
	rg.DELETE("/:entity/:id", h.Delete)
}

func (h *Handler) entity(c *gin.Context) (*Entity, bool) {
	e, ok := h.registry[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return nil, false
	}
	return e, true
}

// Index handles GET /admin/ and lists the available grids.
func (h *Handler) Index(c *gin.Context) {
	names := make([]string, 0, len(h.registry))
	for name := range h.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"entities": names})
}

// List handles GET /admin/:entity and returns all rows. Password
// columns are never listed back.
func (h *Handler) List(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}

	var rows []map[string]any
	if err := h.db.Table(e.Table).Order("id").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rows"})
		return
	}

	for _, f := range e.Fields {
		if f.Kind != KindPassword {
			continue
		}
		for _, row := range rows {
			delete(row, f.Name)
		}
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// refChoice is one selectable value for a foreign-key field.
type refChoice struct {
	ID    any `json:"id"`
	Label any `json:"label"`
}

// Schema handles GET /admin/:entity/schema: the field descriptors
// plus the current choices for every foreign-key field.
func (h *Handler) Schema(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}

	refs := make(map[string][]refChoice)
	for _, f := range e.Fields {
		if f.Kind != KindRef {
			continue
		}
		target, ok := h.registry[f.Ref]
		if !ok {
			continue
		}
		var rows []map[string]any
		if err := h.db.Table(target.Table).Select("id", f.RefLabel).Order("id").Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load choices"})
			return
		}
		choices := make([]refChoice, 0, len(rows))
		for _, row := range rows {
			choices = append(choices, refChoice{ID: row["id"], Label: row[f.RefLabel]})
		}
		refs[f.Name] = choices
	}

	c.JSON(http.StatusOK, gin.H{"fields": e.Fields, "refs": refs})
}

// Create handles POST /admin/:entity.
func (h *Handler) Create(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		values, err := h.coerce(tx, e, input, true)
		if err != nil {
			return err
		}
		if e.beforeSave != nil {
			if err := e.beforeSave(tx, values, true); err != nil {
				return err
			}
		}
		return tx.Model(e.Model()).Create(values).Error
	})
	if err != nil {
		writeGridError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Update handles PUT /admin/:entity/:id.
func (h *Handler) Update(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(e.Table).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errNotFound
		}

		values, err := h.coerce(tx, e, input, false)
		if err != nil {
			return err
		}
		delete(values, "id") // row identity is fixed by the URL
		if e.beforeSave != nil {
			if err := e.beforeSave(tx, values, false); err != nil {
				return err
			}
		}
		if len(values) == 0 {
			return nil
		}
		return tx.Model(e.Model()).Where("id = ?", id).Updates(values).Error
	})
	if err != nil {
		writeGridError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /admin/:entity/:id. The delete runs in a
// transaction and is rolled back on any failure.
func (h *Handler) Delete(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if e.beforeDelete != nil {
			if err := e.beforeDelete(tx, id); err != nil {
				return err
			}
		}
		res := tx.Delete(e.Model(), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotFound
		}
		return nil
	})
	if err != nil {
		writeGridError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// coerce validates the raw JSON input against the entity's fields and
// returns the column values to write. Unknown keys are dropped;
// foreign keys are checked against the referenced table; passwords
// are hashed and never stored raw.
func (h *Handler) coerce(tx *gorm.DB, e *Entity, input map[string]any, isCreate bool) (map[string]any, error) {
	values := make(map[string]any, len(e.Fields))
	for _, f := range e.Fields {
		raw, present := input[f.Name]
		if !present || raw == nil || raw == "" {
			if f.Required && isCreate {
				return nil, fmt.Errorf("%w: %s is required", errInvalid, f.Name)
			}
			continue
		}

		switch f.Kind {
		case KindString:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string", errInvalid, f.Name)
			}
			values[f.Name] = s

		case KindChoice:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string", errInvalid, f.Name)
			}
			valid := false
			for _, choice := range f.Choices {
				if s == choice {
					valid = true
					break
				}
			}
			if !valid {
				return nil, fmt.Errorf("%w: %s must be one of %v", errInvalid, f.Name, f.Choices)
			}
			values[f.Name] = s

		case KindInt, KindRef:
			n, err := toInt64(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be a number", errInvalid, f.Name)
			}
			if f.Kind == KindRef {
				target, ok := h.registry[f.Ref]
				if !ok {
					return nil, fmt.Errorf("unknown referenced entity %q", f.Ref)
				}
				var count int64
				if err := tx.Table(target.Table).Where("id = ?", n).Count(&count).Error; err != nil {
					return nil, fmt.Errorf("failed to resolve %s: %w", f.Name, err)
				}
				if count == 0 {
					return nil, fmt.Errorf("%w: %s references a missing %s row", errInvalid, f.Name, f.Ref)
				}
			}
			values[f.Name] = n

		case KindBool:
			b, ok := raw.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a boolean", errInvalid, f.Name)
			}
			values[f.Name] = b

		case KindDate:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a date string", errInvalid, f.Name)
			}
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be formatted YYYY-MM-DD", errInvalid, f.Name)
			}
			values[f.Name] = d

		case KindPassword:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string", errInvalid, f.Name)
			}
			hash, err := auth.HashPassword(s)
			if err != nil {
				return nil, err
			}
			values[f.Name] = hash
		}
	}
	return values, nil
}

// toInt64 accepts the numeric encodings JSON clients produce.
func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", raw)
	}
}

func writeGridError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalid), errors.Is(err, ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
