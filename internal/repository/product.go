package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	FindByID(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Product, error)
	Update(ctx context.Context, tx *gorm.DB, productID uint, cols map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, productID uint) error
	Count(ctx context.Context) (int64, error)

	ReplaceCategories(ctx context.Context, tx *gorm.DB, productID uint, categoryIDs []uint) error
	Categories(ctx context.Context, tx *gorm.DB, productID uint) ([]model.Category, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return use(ctx, r.db, tx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := use(ctx, r.db, tx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, activeOnly bool) ([]*model.Product, error) {
	var products []*model.Product
	q := r.db.WithContext(ctx).Order("id")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Update(ctx context.Context, tx *gorm.DB, productID uint, cols map[string]interface{}) error {
	return use(ctx, r.db, tx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(cols).Error
}

// Delete removes the product and its category associations. Callers must
// check that no order line references the product first.
func (r *productRepoImpl) Delete(ctx context.Context, tx *gorm.DB, productID uint) error {
	db := use(ctx, r.db, tx)
	if err := db.Where("product_id = ?", productID).Delete(&model.ProductCategory{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Product{}, productID).Error
}

func (r *productRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepoImpl) ReplaceCategories(ctx context.Context, tx *gorm.DB, productID uint, categoryIDs []uint) error {
	db := use(ctx, r.db, tx)
	if err := db.Where("product_id = ?", productID).Delete(&model.ProductCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]model.ProductCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		links = append(links, model.ProductCategory{ProductID: productID, CategoryID: id})
	}

	// duplicate ids in the request collapse onto the unique pair index
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *productRepoImpl) Categories(ctx context.Context, tx *gorm.DB, productID uint) ([]model.Category, error) {
	var categories []model.Category
	err := use(ctx, r.db, tx).
		Joins("JOIN product_categories ON product_categories.category_id = categories.id").
		Where("product_categories.product_id = ?", productID).
		Order("categories.name").
		Find(&categories).Error

	if err != nil {
		return nil, err
	}

	return categories, nil
}
