package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, customer *model.Customer) error
	FindByID(ctx context.Context, tx *gorm.DB, customerID uint) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	EmailTaken(ctx context.Context, tx *gorm.DB, email string, excludeID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, customerID uint, cols map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, customerID uint) error
}

type customerRepoImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepoImpl{
		db: db,
	}
}

func (r *customerRepoImpl) Create(ctx context.Context, tx *gorm.DB, customer *model.Customer) error {
	return use(ctx, r.db, tx).Create(customer).Error
}

func (r *customerRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, customerID uint) (*model.Customer, error) {
	var customer model.Customer
	err := use(ctx, r.db, tx).
		Where("id = ?", customerID).
		First(&customer).Error

	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepoImpl) List(ctx context.Context) ([]*model.Customer, error) {
	var customers []*model.Customer
	err := r.db.WithContext(ctx).Order("id").Find(&customers).Error
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *customerRepoImpl) EmailTaken(ctx context.Context, tx *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	err := use(ctx, r.db, tx).Model(&model.Customer{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, excludeID).
		Count(&count).Error

	return count > 0, err
}

func (r *customerRepoImpl) Update(ctx context.Context, tx *gorm.DB, customerID uint, cols map[string]interface{}) error {
	return use(ctx, r.db, tx).
		Model(&model.Customer{}).
		Where("id = ?", customerID).
		Updates(cols).Error
}

func (r *customerRepoImpl) Delete(ctx context.Context, tx *gorm.DB, customerID uint) error {
	return use(ctx, r.db, tx).Delete(&model.Customer{}, customerID).Error
}
