package repository

import (
	"context"
	"storefront-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	FindForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	FindWithLines(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error)
	Update(ctx context.Context, tx *gorm.DB, orderID uint, cols map[string]interface{}) error
	UpdateTotal(ctx context.Context, tx *gorm.DB, orderID uint, total decimal.Decimal) error
	Delete(ctx context.Context, tx *gorm.DB, orderID uint) error
	ExistsForCustomer(ctx context.Context, tx *gorm.DB, customerID uint) (bool, error)

	CreateLine(ctx context.Context, tx *gorm.DB, line *model.OrderLine) error
	FindLine(ctx context.Context, tx *gorm.DB, lineID uint) (*model.OrderLine, error)
	UpdateLine(ctx context.Context, tx *gorm.DB, line *model.OrderLine) error
	DeleteLine(ctx context.Context, tx *gorm.DB, lineID uint) error
	LineSubtotals(ctx context.Context, tx *gorm.DB, orderID uint) ([]decimal.Decimal, error)
	LinesExistForProduct(ctx context.Context, tx *gorm.DB, productID uint) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return use(ctx, r.db, tx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := use(ctx, r.db, tx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// FindForUpdate locks the order row for the rest of the transaction so
// concurrent line and payment writers on the same order are serialized.
func (r *orderRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := forUpdate(use(ctx, r.db, tx)).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindWithLines(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := use(ctx, r.db, tx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) List(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error) {
	q := r.db.WithContext(ctx).Order("id")
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.State != nil {
		q = q.Where("state = ?", *filter.State)
	}

	var orders []*model.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) Update(ctx context.Context, tx *gorm.DB, orderID uint, cols map[string]interface{}) error {
	return use(ctx, r.db, tx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(cols).Error
}

// UpdateTotal writes the total column and nothing else.
func (r *orderRepoImpl) UpdateTotal(ctx context.Context, tx *gorm.DB, orderID uint, total decimal.Decimal) error {
	return use(ctx, r.db, tx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total", total).Error
}

// Delete cascades to the order's lines, payments and shipment.
func (r *orderRepoImpl) Delete(ctx context.Context, tx *gorm.DB, orderID uint) error {
	db := use(ctx, r.db, tx)
	for _, dependent := range []interface{}{&model.OrderLine{}, &model.Payment{}, &model.Shipment{}} {
		if err := db.Where("order_id = ?", orderID).Delete(dependent).Error; err != nil {
			return err
		}
	}
	return db.Delete(&model.Order{}, orderID).Error
}

func (r *orderRepoImpl) ExistsForCustomer(ctx context.Context, tx *gorm.DB, customerID uint) (bool, error) {
	var count int64
	err := use(ctx, r.db, tx).Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) CreateLine(ctx context.Context, tx *gorm.DB, line *model.OrderLine) error {
	return use(ctx, r.db, tx).Create(line).Error
}

func (r *orderRepoImpl) FindLine(ctx context.Context, tx *gorm.DB, lineID uint) (*model.OrderLine, error) {
	var line model.OrderLine
	err := use(ctx, r.db, tx).
		Where("id = ?", lineID).
		First(&line).Error

	if err != nil {
		return nil, err
	}

	return &line, nil
}

func (r *orderRepoImpl) UpdateLine(ctx context.Context, tx *gorm.DB, line *model.OrderLine) error {
	return use(ctx, r.db, tx).
		Model(&model.OrderLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]interface{}{
			"quantity": line.Quantity,
			"subtotal": line.Subtotal,
		}).Error
}

func (r *orderRepoImpl) DeleteLine(ctx context.Context, tx *gorm.DB, lineID uint) error {
	return use(ctx, r.db, tx).Delete(&model.OrderLine{}, lineID).Error
}

func (r *orderRepoImpl) LineSubtotals(ctx context.Context, tx *gorm.DB, orderID uint) ([]decimal.Decimal, error) {
	var rows []struct {
		Subtotal decimal.Decimal
	}
	err := use(ctx, r.db, tx).
		Model(&model.OrderLine{}).
		Select("subtotal").
		Where("order_id = ?", orderID).
		Find(&rows).
		Error

	if err != nil {
		return nil, err
	}

	subtotals := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		subtotals[i] = row.Subtotal
	}
	return subtotals, nil
}

func (r *orderRepoImpl) LinesExistForProduct(ctx context.Context, tx *gorm.DB, productID uint) (bool, error) {
	var count int64
	err := use(ctx, r.db, tx).Model(&model.OrderLine{}).
		Where("product_id = ?", productID).
		Count(&count).Error

	return count > 0, err
}
