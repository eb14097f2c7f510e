package service

import (
	"context"
	"fmt"
	"storefront-api/internal/apperror"
	"storefront-api/internal/logger"
	"storefront-api/internal/metrics"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShipmentInput struct {
	OrderID uint
	Address string
	Carrier *string
	Cost    *decimal.Decimal
}

type ShipmentService interface {
	CreateShipment(ctx context.Context, in ShipmentInput) (*model.Shipment, error)
	GetShipment(ctx context.Context, shipmentID uint) (*model.Shipment, error)
	GetShipmentByOrder(ctx context.Context, orderID uint) (*model.Shipment, error)

	UpdateShipment(ctx context.Context, shipmentID uint, patch model.ShipmentPatch) (*model.Shipment, error)
	ChangeShipmentState(ctx context.Context, shipmentID uint, state model.ShipmentState) (*model.Shipment, error)
	DeleteShipment(ctx context.Context, shipmentID uint) error
}

type shipmentServiceImpl struct {
	db           *gorm.DB
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.OrderRepository
	now          func() time.Time
}

func NewShipmentService(
	db *gorm.DB,
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.OrderRepository,
	now func() time.Time,
) ShipmentService {
	if now == nil {
		now = time.Now
	}
	return &shipmentServiceImpl{
		db:           db,
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		now:          now,
	}
}

func (s *shipmentServiceImpl) CreateShipment(ctx context.Context, in ShipmentInput) (*model.Shipment, error) {
	if strings.TrimSpace(in.Address) == "" {
		return nil, apperror.InvalidArgument("shipping address must not be empty")
	}
	if in.Cost != nil && model.Money(*in.Cost).IsNegative() {
		return nil, apperror.InvalidArgument("shipping cost must not be negative")
	}

	shipment := &model.Shipment{
		OrderID: in.OrderID,
		Address: in.Address,
		State:   model.ShipmentPending,
		Carrier: in.Carrier,
	}
	if in.Cost != nil {
		cost := model.Money(*in.Cost)
		shipment.Cost = &cost
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, in.OrderID)
		if err != nil {
			return apperror.FromStore(err, "order", in.OrderID)
		}

		if order.State == model.OrderCanceled {
			return apperror.Conflict("order %d is canceled and cannot be shipped", order.ID)
		}

		exists, err := s.shipmentRepo.ExistsForOrder(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("check shipment of order %d: %w", order.ID, err)
		}
		if exists {
			return apperror.Conflict("order %d already has a shipment", order.ID)
		}

		if err := s.shipmentRepo.Create(ctx, tx, shipment); err != nil {
			return apperror.FromStore(err, "shipment", order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("shipment created",
		zap.Uint("shipment_id", shipment.ID),
		zap.Uint("order_id", shipment.OrderID))

	return shipment, nil
}

func (s *shipmentServiceImpl) GetShipment(ctx context.Context, shipmentID uint) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, nil, shipmentID)
	if err != nil {
		return nil, apperror.FromStore(err, "shipment", shipmentID)
	}
	return shipment, nil
}

func (s *shipmentServiceImpl) GetShipmentByOrder(ctx context.Context, orderID uint) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByOrderID(ctx, nil, orderID)
	if err != nil {
		return nil, apperror.FromStore(err, "shipment for order", orderID)
	}
	return shipment, nil
}

func (s *shipmentServiceImpl) UpdateShipment(ctx context.Context, shipmentID uint, patch model.ShipmentPatch) (*model.Shipment, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var shipment *model.Shipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.shipmentRepo.FindByID(ctx, tx, shipmentID); err != nil {
			return apperror.FromStore(err, "shipment", shipmentID)
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := s.shipmentRepo.Update(ctx, tx, shipmentID, cols); err != nil {
				return fmt.Errorf("update shipment %d: %w", shipmentID, err)
			}
		}

		var err error
		shipment, err = s.shipmentRepo.FindByID(ctx, tx, shipmentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return shipment, nil
}

// ChangeShipmentState accepts any known state. Entering in_transit stamps
// shipped_at and entering delivered stamps delivered_at, each only the
// first time.
func (s *shipmentServiceImpl) ChangeShipmentState(ctx context.Context, shipmentID uint, state model.ShipmentState) (*model.Shipment, error) {
	if !state.Valid() {
		return nil, apperror.InvalidArgument("unknown shipment state %q", state)
	}

	var shipment *model.Shipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.shipmentRepo.FindByID(ctx, tx, shipmentID)
		if err != nil {
			return apperror.FromStore(err, "shipment", shipmentID)
		}

		cols := map[string]interface{}{"state": state}
		switch state {
		case model.ShipmentInTransit:
			if current.ShippedAt == nil {
				cols["shipped_at"] = s.now()
			}
		case model.ShipmentDelivered:
			if current.DeliveredAt == nil {
				cols["delivered_at"] = s.now()
			}
		}

		if err := s.shipmentRepo.Update(ctx, tx, shipmentID, cols); err != nil {
			return fmt.Errorf("update shipment %d state: %w", shipmentID, err)
		}

		shipment, err = s.shipmentRepo.FindByID(ctx, tx, shipmentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ShipmentTransitions.WithLabelValues(string(state)).Inc()
	logger.FromContext(ctx).Info("shipment state changed",
		zap.Uint("shipment_id", shipmentID),
		zap.String("state", string(state)))

	return shipment, nil
}

func (s *shipmentServiceImpl) DeleteShipment(ctx context.Context, shipmentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shipment, err := s.shipmentRepo.FindByID(ctx, tx, shipmentID)
		if err != nil {
			return apperror.FromStore(err, "shipment", shipmentID)
		}

		if shipment.State == model.ShipmentInTransit || shipment.State == model.ShipmentDelivered {
			return apperror.Conflict("shipment %d is %s and cannot be deleted", shipmentID, shipment.State)
		}

		if err := s.shipmentRepo.Delete(ctx, tx, shipmentID); err != nil {
			return fmt.Errorf("delete shipment %d: %w", shipmentID, err)
		}
		return nil
	})
}
