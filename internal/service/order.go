package service

import (
	"context"
	"fmt"
	"storefront-api/internal/apperror"
	"storefront-api/internal/logger"
	"storefront-api/internal/metrics"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, customerID uint, deliveryMethod, notes *string) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error)
	GetLine(ctx context.Context, lineID uint) (*model.OrderLine, error)

	AddLine(ctx context.Context, orderID, productID uint, quantity int) (*model.OrderLine, *model.Order, error)
	UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) (*model.OrderLine, *model.Order, error)
	RemoveLine(ctx context.Context, lineID uint) (*model.Order, error)

	UpdateOrderFields(ctx context.Context, orderID uint, patch model.OrderPatch) (*model.Order, error)
	ChangeOrderState(ctx context.Context, orderID uint, state model.OrderState) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID uint) error

	// RecomputeTotal sets the order total to the sum of its line subtotals.
	// It is the only writer of the total and runs inside the caller's
	// transaction.
	RecomputeTotal(ctx context.Context, tx *gorm.DB, orderID uint) (decimal.Decimal, error)
}

type orderServiceImpl struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderServiceImpl{
		db:           db,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, customerID uint, deliveryMethod, notes *string) (*model.Order, error) {
	order := &model.Order{
		CustomerID:     customerID,
		State:          model.OrderPending,
		Total:          decimal.Zero,
		DeliveryMethod: deliveryMethod,
		Notes:          notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.customerRepo.FindByID(ctx, tx, customerID); err != nil {
			return apperror.FromStore(err, "customer", customerID)
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.FromContext(ctx).Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", customerID))

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindWithLines(ctx, nil, orderID)
	if err != nil {
		return nil, apperror.FromStore(err, "order", orderID)
	}
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error) {
	if filter.State != nil && !filter.State.Valid() {
		return nil, apperror.InvalidArgument("unknown order state %q", *filter.State)
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *orderServiceImpl) GetLine(ctx context.Context, lineID uint) (*model.OrderLine, error) {
	line, err := s.orderRepo.FindLine(ctx, nil, lineID)
	if err != nil {
		return nil, apperror.FromStore(err, "order line", lineID)
	}
	return line, nil
}

func (s *orderServiceImpl) AddLine(ctx context.Context, orderID, productID uint, quantity int) (*model.OrderLine, *model.Order, error) {
	if quantity <= 0 {
		return nil, nil, apperror.InvalidArgument("quantity must be positive, got %d", quantity)
	}

	var (
		line  *model.OrderLine
		order *model.Order
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindForUpdate(ctx, tx, orderID); err != nil {
			return apperror.FromStore(err, "order", orderID)
		}

		product, err := s.productRepo.FindByID(ctx, tx, productID)
		if err != nil {
			return apperror.FromStore(err, "product", productID)
		}

		line = &model.OrderLine{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: model.Money(product.Price),
		}
		line.Reprice()

		if err := s.orderRepo.CreateLine(ctx, tx, line); err != nil {
			return fmt.Errorf("store order line: %w", err)
		}

		order, err = s.recomputeAndReload(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.OrderLineMutations.WithLabelValues("add").Inc()
	logger.FromContext(ctx).Info("order line added",
		zap.Uint("order_id", orderID),
		zap.Uint("line_id", line.ID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("total", order.Total.StringFixed(model.MoneyPlaces)))

	return line, order, nil
}

func (s *orderServiceImpl) UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) (*model.OrderLine, *model.Order, error) {
	if quantity <= 0 {
		return nil, nil, apperror.InvalidArgument("quantity must be positive, got %d", quantity)
	}

	var (
		line  *model.OrderLine
		order *model.Order
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		line, err = s.orderRepo.FindLine(ctx, tx, lineID)
		if err != nil {
			return apperror.FromStore(err, "order line", lineID)
		}

		if _, err := s.orderRepo.FindForUpdate(ctx, tx, line.OrderID); err != nil {
			return apperror.FromStore(err, "order", line.OrderID)
		}

		line.Quantity = quantity
		line.Reprice()
		if err := s.orderRepo.UpdateLine(ctx, tx, line); err != nil {
			return fmt.Errorf("update order line %d: %w", lineID, err)
		}

		order, err = s.recomputeAndReload(ctx, tx, line.OrderID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.OrderLineMutations.WithLabelValues("update").Inc()
	logger.FromContext(ctx).Info("order line quantity changed",
		zap.Uint("order_id", order.ID),
		zap.Uint("line_id", lineID),
		zap.Int("quantity", quantity))

	return line, order, nil
}

func (s *orderServiceImpl) RemoveLine(ctx context.Context, lineID uint) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := s.orderRepo.FindLine(ctx, tx, lineID)
		if err != nil {
			return apperror.FromStore(err, "order line", lineID)
		}

		if _, err := s.orderRepo.FindForUpdate(ctx, tx, line.OrderID); err != nil {
			return apperror.FromStore(err, "order", line.OrderID)
		}

		if err := s.orderRepo.DeleteLine(ctx, tx, lineID); err != nil {
			return fmt.Errorf("delete order line %d: %w", lineID, err)
		}

		order, err = s.recomputeAndReload(ctx, tx, line.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderLineMutations.WithLabelValues("remove").Inc()
	logger.FromContext(ctx).Info("order line removed",
		zap.Uint("order_id", order.ID),
		zap.Uint("line_id", lineID))

	return order, nil
}

func (s *orderServiceImpl) UpdateOrderFields(ctx context.Context, orderID uint, patch model.OrderPatch) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindForUpdate(ctx, tx, orderID); err != nil {
			return apperror.FromStore(err, "order", orderID)
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := s.orderRepo.Update(ctx, tx, orderID, cols); err != nil {
				return fmt.Errorf("update order %d: %w", orderID, err)
			}
		}

		var err error
		order, err = s.orderRepo.FindWithLines(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ChangeOrderState accepts any known state from any state.
func (s *orderServiceImpl) ChangeOrderState(ctx context.Context, orderID uint, state model.OrderState) (*model.Order, error) {
	if !state.Valid() {
		return nil, apperror.InvalidArgument("unknown order state %q", state)
	}

	var (
		order *model.Order
		from  model.OrderState
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return apperror.FromStore(err, "order", orderID)
		}
		from = current.State

		if err := s.orderRepo.Update(ctx, tx, orderID, map[string]interface{}{"state": state}); err != nil {
			return fmt.Errorf("update order %d state: %w", orderID, err)
		}

		order, err = s.orderRepo.FindWithLines(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderStateChanges.WithLabelValues(string(state)).Inc()
	logger.FromContext(ctx).Info("order state changed",
		zap.Uint("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(state)))

	return order, nil
}

func (s *orderServiceImpl) DeleteOrder(ctx context.Context, orderID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return apperror.FromStore(err, "order", orderID)
		}

		if order.State == model.OrderDelivered {
			return apperror.Conflict("order %d is delivered and cannot be deleted", orderID)
		}

		if err := s.orderRepo.Delete(ctx, tx, orderID); err != nil {
			return fmt.Errorf("delete order %d: %w", orderID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("order deleted", zap.Uint("order_id", orderID))
	return nil
}

func (s *orderServiceImpl) RecomputeTotal(ctx context.Context, tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	subtotals, err := s.orderRepo.LineSubtotals(ctx, tx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load line subtotals of order %d: %w", orderID, err)
	}

	total := model.Money(decimal.Sum(decimal.Zero, subtotals...))
	if err := s.orderRepo.UpdateTotal(ctx, tx, orderID, total); err != nil {
		return decimal.Zero, fmt.Errorf("update total of order %d: %w", orderID, err)
	}

	return total, nil
}

func (s *orderServiceImpl) recomputeAndReload(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	if _, err := s.RecomputeTotal(ctx, tx, orderID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindWithLines(ctx, tx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order %d: %w", orderID, err)
	}
	return order, nil
}
