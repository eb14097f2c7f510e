package repository

import (
	"context"
	"storefront-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	FindByID(ctx context.Context, tx *gorm.DB, paymentID uint) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID uint) ([]*model.Payment, error)
	Amounts(ctx context.Context, tx *gorm.DB, orderID uint, excludeID uint) ([]decimal.Decimal, error)
	Update(ctx context.Context, tx *gorm.DB, paymentID uint, cols map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, paymentID uint) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return use(ctx, r.db, tx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, paymentID uint) (*model.Payment, error) {
	var payment model.Payment
	err := use(ctx, r.db, tx).
		Where("id = ?", paymentID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) ListByOrder(ctx context.Context, orderID uint) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}

// Amounts returns the amounts of every payment on the order whatever its
// state, leaving out excludeID (0 excludes nothing). Callers sum them in
// decimal.
func (r *paymentRepoImpl) Amounts(ctx context.Context, tx *gorm.DB, orderID uint, excludeID uint) ([]decimal.Decimal, error) {
	var rows []struct {
		Amount decimal.Decimal
	}
	err := use(ctx, r.db, tx).
		Model(&model.Payment{}).
		Select("amount").
		Where("order_id = ? AND id <> ?", orderID, excludeID).
		Find(&rows).
		Error

	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		amounts[i] = row.Amount
	}
	return amounts, nil
}

func (r *paymentRepoImpl) Update(ctx context.Context, tx *gorm.DB, paymentID uint, cols map[string]interface{}) error {
	return use(ctx, r.db, tx).
		Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Updates(cols).Error
}

func (r *paymentRepoImpl) Delete(ctx context.Context, tx *gorm.DB, paymentID uint) error {
	return use(ctx, r.db, tx).Delete(&model.Payment{}, paymentID).Error
}
