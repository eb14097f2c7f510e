package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, category *model.Category) error
	FindByID(ctx context.Context, tx *gorm.DB, categoryID uint) (*model.Category, error)
	FindMany(ctx context.Context, tx *gorm.DB, categoryIDs []uint) ([]*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	NameTaken(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, categoryID uint, cols map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, categoryID uint) error
	Seed(ctx context.Context, categories []model.Category) error
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		db: db,
	}
}

func (r *categoryRepoImpl) Create(ctx context.Context, tx *gorm.DB, category *model.Category) error {
	return use(ctx, r.db, tx).Create(category).Error
}

func (r *categoryRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, categoryID uint) (*model.Category, error) {
	var category model.Category
	err := use(ctx, r.db, tx).
		Where("id = ?", categoryID).
		First(&category).Error

	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepoImpl) FindMany(ctx context.Context, tx *gorm.DB, categoryIDs []uint) ([]*model.Category, error) {
	var categories []*model.Category
	err := use(ctx, r.db, tx).
		Where("id IN ?", categoryIDs).
		Order("id").
		Find(&categories).
		Error

	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepoImpl) List(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// NameTaken compares names case-insensitively.
func (r *categoryRepoImpl) NameTaken(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	err := use(ctx, r.db, tx).Model(&model.Category{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count).Error

	return count > 0, err
}

func (r *categoryRepoImpl) Update(ctx context.Context, tx *gorm.DB, categoryID uint, cols map[string]interface{}) error {
	return use(ctx, r.db, tx).
		Model(&model.Category{}).
		Where("id = ?", categoryID).
		Updates(cols).Error
}

// Delete removes the category and its product associations.
func (r *categoryRepoImpl) Delete(ctx context.Context, tx *gorm.DB, categoryID uint) error {
	db := use(ctx, r.db, tx)
	if err := db.Where("category_id = ?", categoryID).Delete(&model.ProductCategory{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Category{}, categoryID).Error
}

func (r *categoryRepoImpl) Seed(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error
}
