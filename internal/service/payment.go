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

type PaymentInput struct {
	OrderID        uint
	Amount         decimal.Decimal
	Method         model.PaymentMethod
	Note           *string
	TransactionRef *string
}

type PaymentService interface {
	CreatePayment(ctx context.Context, in PaymentInput) (*model.Payment, error)
	GetPayment(ctx context.Context, paymentID uint) (*model.Payment, error)
	ListPayments(ctx context.Context, orderID uint) ([]*model.Payment, error)
	Balance(ctx context.Context, orderID uint) (*model.Balance, error)

	UpdatePayment(ctx context.Context, paymentID uint, patch model.PaymentPatch) (*model.Payment, error)
	ChangePaymentState(ctx context.Context, paymentID uint, state model.PaymentState) (*model.Payment, error)
	DeletePayment(ctx context.Context, paymentID uint) error
}

type paymentServiceImpl struct {
	db          *gorm.DB
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

func NewPaymentService(
	db *gorm.DB,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

func (s *paymentServiceImpl) CreatePayment(ctx context.Context, in PaymentInput) (*model.Payment, error) {
	amount := model.Money(in.Amount)
	if !amount.IsPositive() {
		return nil, apperror.InvalidArgument("payment amount must be at least 0.01")
	}
	if !in.Method.Valid() {
		return nil, apperror.InvalidArgument("unknown payment method %q", in.Method)
	}

	payment := &model.Payment{
		OrderID:        in.OrderID,
		Amount:         amount,
		Method:         in.Method,
		Note:           in.Note,
		TransactionRef: in.TransactionRef,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, in.OrderID)
		if err != nil {
			return apperror.FromStore(err, "order", in.OrderID)
		}

		remaining, err := s.remaining(ctx, tx, order, 0)
		if err != nil {
			return err
		}

		if amount.GreaterThan(remaining) {
			metrics.PaymentsRejected.WithLabelValues("exceeds_remaining").Inc()
			return apperror.Conflict("payment of %s exceeds remaining balance %s of order %d",
				amount.StringFixed(model.MoneyPlaces), remaining.StringFixed(model.MoneyPlaces), order.ID)
		}

		payment.State = model.PaymentPending
		if amount.Equal(remaining) {
			payment.State = model.PaymentSucceeded
		}

		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsCreated.WithLabelValues(string(payment.Method), string(payment.State)).Inc()
	logger.FromContext(ctx).Info("payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", payment.OrderID),
		zap.String("amount", payment.Amount.StringFixed(model.MoneyPlaces)),
		zap.String("state", string(payment.State)))

	return payment, nil
}

func (s *paymentServiceImpl) GetPayment(ctx context.Context, paymentID uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, nil, paymentID)
	if err != nil {
		return nil, apperror.FromStore(err, "payment", paymentID)
	}
	return payment, nil
}

func (s *paymentServiceImpl) ListPayments(ctx context.Context, orderID uint) ([]*model.Payment, error) {
	if _, err := s.orderRepo.FindByID(ctx, nil, orderID); err != nil {
		return nil, apperror.FromStore(err, "order", orderID)
	}
	return s.paymentRepo.ListByOrder(ctx, orderID)
}

func (s *paymentServiceImpl) Balance(ctx context.Context, orderID uint) (*model.Balance, error) {
	order, err := s.orderRepo.FindByID(ctx, nil, orderID)
	if err != nil {
		return nil, apperror.FromStore(err, "order", orderID)
	}

	paid, err := s.paidSoFar(ctx, nil, orderID, 0)
	if err != nil {
		return nil, err
	}

	return &model.Balance{
		OrderID:   orderID,
		Total:     model.Money(order.Total),
		Paid:      paid,
		Remaining: model.Money(order.Total.Sub(paid)),
	}, nil
}

func (s *paymentServiceImpl) UpdatePayment(ctx context.Context, paymentID uint, patch model.PaymentPatch) (*model.Payment, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var payment *model.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.paymentRepo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return apperror.FromStore(err, "payment", paymentID)
		}

		if current.State.Frozen() {
			metrics.PaymentsRejected.WithLabelValues("frozen").Inc()
			return apperror.Conflict("payment %d is %s and cannot be modified", paymentID, current.State)
		}

		if patch.Amount != nil {
			order, err := s.orderRepo.FindForUpdate(ctx, tx, current.OrderID)
			if err != nil {
				return apperror.FromStore(err, "order", current.OrderID)
			}

			remaining, err := s.remaining(ctx, tx, order, paymentID)
			if err != nil {
				return err
			}

			if amount := model.Money(*patch.Amount); amount.GreaterThan(remaining) {
				metrics.PaymentsRejected.WithLabelValues("exceeds_remaining").Inc()
				return apperror.Conflict("payment of %s exceeds remaining balance %s of order %d",
					amount.StringFixed(model.MoneyPlaces), remaining.StringFixed(model.MoneyPlaces), order.ID)
			}
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := s.paymentRepo.Update(ctx, tx, paymentID, cols); err != nil {
				return fmt.Errorf("update payment %d: %w", paymentID, err)
			}
		}

		payment, err = s.paymentRepo.FindByID(ctx, tx, paymentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// ChangePaymentState allows any transition except out of refunded.
func (s *paymentServiceImpl) ChangePaymentState(ctx context.Context, paymentID uint, state model.PaymentState) (*model.Payment, error) {
	if !state.Valid() {
		return nil, apperror.InvalidArgument("unknown payment state %q", state)
	}

	var (
		payment *model.Payment
		from    model.PaymentState
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.paymentRepo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return apperror.FromStore(err, "payment", paymentID)
		}
		from = current.State

		if current.State == model.PaymentRefunded {
			return apperror.Conflict("payment %d is refunded; no further state changes are allowed", paymentID)
		}

		if err := s.paymentRepo.Update(ctx, tx, paymentID, map[string]interface{}{"state": state}); err != nil {
			return fmt.Errorf("update payment %d state: %w", paymentID, err)
		}

		payment, err = s.paymentRepo.FindByID(ctx, tx, paymentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("payment state changed",
		zap.Uint("payment_id", paymentID),
		zap.String("from", string(from)),
		zap.String("to", string(state)))

	return payment, nil
}

func (s *paymentServiceImpl) DeletePayment(ctx context.Context, paymentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return apperror.FromStore(err, "payment", paymentID)
		}

		if payment.State == model.PaymentSucceeded {
			return apperror.Conflict("payment %d succeeded; refund it instead of deleting it", paymentID)
		}

		if err := s.paymentRepo.Delete(ctx, tx, paymentID); err != nil {
			return fmt.Errorf("delete payment %d: %w", paymentID, err)
		}
		return nil
	})
}

// paidSoFar sums every payment on the order regardless of state, so failed
// and refunded payments still reduce the remaining balance.
func (s *paymentServiceImpl) paidSoFar(ctx context.Context, tx *gorm.DB, orderID, excludeID uint) (decimal.Decimal, error) {
	amounts, err := s.paymentRepo.Amounts(ctx, tx, orderID, excludeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load payments of order %d: %w", orderID, err)
	}
	return model.Money(decimal.Sum(decimal.Zero, amounts...)), nil
}

func (s *paymentServiceImpl) remaining(ctx context.Context, tx *gorm.DB, order *model.Order, excludeID uint) (decimal.Decimal, error) {
	paid, err := s.paidSoFar(ctx, tx, order.ID, excludeID)
	if err != nil {
		return decimal.Zero, err
	}
	return model.Money(order.Total.Sub(paid)), nil
}
