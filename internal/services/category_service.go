package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/models"
)

// categoryService handles the three user-defined label tables. All queries
// go through kind.Table() so one implementation serves account types,
// income types, and expense types.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func (s *categoryService) table(kind models.CustomKind) (*gorm.DB, error) {
	name := kind.Table()
	if name == "" {
		return nil, apperrors.ErrUnknownKind
	}
	return s.db.Table(name), nil
}

// CreateCategory creates a new label of the given kind.
func (s *categoryService) CreateCategory(userID string, kind models.CustomKind, name, description string) (*models.CustomType, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	q, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	category := &models.CustomType{
		UserID:      userID,
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := q.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories retrieves all labels of a kind owned by a user.
func (s *categoryService) ListCategories(userID string, kind models.CustomKind) ([]models.CustomType, error) {
	q, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	var categories []models.CustomType
	if err := q.Where("user_id = ?", userID).Order("created_at").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a label by ID for a specific user.
func (s *categoryService) GetCategoryByID(userID string, kind models.CustomKind, categoryID string) (*models.CustomType, error) {
	q, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	var category models.CustomType
	if err := q.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory overwrites a label's name and description.
func (s *categoryService) UpdateCategory(userID string, kind models.CustomKind, categoryID, name, description string) (*models.CustomType, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	category, err := s.GetCategoryByID(userID, kind, categoryID)
	if err != nil {
		return nil, err
	}

	q, err := s.table(kind)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"name": name, "description": description}
	if err := q.Where("id = ?", category.ID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category.Name = name
	category.Description = description
	return category, nil
}

// DeleteCategory removes a label. The schema nulls out references from
// cards and entries (ON DELETE SET NULL), which readers treat as
// uncategorized.
func (s *categoryService) DeleteCategory(userID string, kind models.CustomKind, categoryID string) error {
	category, err := s.GetCategoryByID(userID, kind, categoryID)
	if err != nil {
		return err
	}

	q, err := s.table(kind)
	if err != nil {
		return err
	}
	if err := q.Where("id = ?", category.ID).Delete(&models.CustomType{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
