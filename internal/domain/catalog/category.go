package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
)

const maxCategoryNameLen = 50

// DefaultCategories are created by the seed command.
var DefaultCategories = []string{"Vegetables", "Fruits", "Grains", "Dairy", "Herbs"}

type Category struct {
	ID   uuid.UUID
	Name string
}

func NewCategory(id uuid.UUID, name string) (*Category, error) {
	v := apperror.NewValidationError()
	name = strings.TrimSpace(name)
	if name == "" {
		v.Add("name", "may not be blank")
	} else if utf8.RuneCountInString(name) > maxCategoryNameLen {
		v.Add("name", "must be at most 50 characters")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return &Category{ID: id, Name: name}, nil
}
