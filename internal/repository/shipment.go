package repository

import (
	"context"
	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type ShipmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, shipment *model.Shipment) error
	FindByID(ctx context.Context, tx *gorm.DB, shipmentID uint) (*model.Shipment, error)
	FindByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Shipment, error)
	ExistsForOrder(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, shipmentID uint, cols map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, shipmentID uint) error
}

type shipmentRepoImpl struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepoImpl{
		db: db,
	}
}

func (r *shipmentRepoImpl) Create(ctx context.Context, tx *gorm.DB, shipment *model.Shipment) error {
	return use(ctx, r.db, tx).Create(shipment).Error
}

func (r *shipmentRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, shipmentID uint) (*model.Shipment, error) {
	var shipment model.Shipment
	err := use(ctx, r.db, tx).
		Where("id = ?", shipmentID).
		First(&shipment).Error

	if err != nil {
		return nil, err
	}

	return &shipment, nil
}

func (r *shipmentRepoImpl) FindByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Shipment, error) {
	var shipment model.Shipment
	err := use(ctx, r.db, tx).
		Where("order_id = ?", orderID).
		First(&shipment).Error

	if err != nil {
		return nil, err
	}

	return &shipment, nil
}

func (r *shipmentRepoImpl) ExistsForOrder(ctx context.Context, tx *gorm.DB, orderID uint) (bool, error) {
	var count int64
	err := use(ctx, r.db, tx).Model(&model.Shipment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count > 0, err
}

func (r *shipmentRepoImpl) Update(ctx context.Context, tx *gorm.DB, shipmentID uint, cols map[string]interface{}) error {
	return use(ctx, r.db, tx).
		Model(&model.Shipment{}).
		Where("id = ?", shipmentID).
		Updates(cols).Error
}

func (r *shipmentRepoImpl) Delete(ctx context.Context, tx *gorm.DB, shipmentID uint) error {
	return use(ctx, r.db, tx).Delete(&model.Shipment{}, shipmentID).Error
}
