package service

import (
	"context"
	"fmt"
	"storefront-api/internal/apperror"
	"storefront-api/internal/logger"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (*model.Customer, error)
	GetCustomer(ctx context.Context, customerID uint) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	UpdateCustomer(ctx context.Context, customerID uint, patch model.CustomerPatch) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, customerID uint) error
}

type customerServiceImpl struct {
	db           *gorm.DB
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(
	db *gorm.DB,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) CustomerService {
	return &customerServiceImpl{
		db:           db,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

func (s *customerServiceImpl) CreateCustomer(ctx context.Context, in CustomerInput) (*model.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return nil, apperror.InvalidArgument("customer name must not be empty")
	}
	if in.Email == "" {
		return nil, apperror.InvalidArgument("customer email must not be empty")
	}

	customer := &model.Customer{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.customerRepo.EmailTaken(ctx, tx, in.Email, 0)
		if err != nil {
			return fmt.Errorf("check customer email: %w", err)
		}
		if taken {
			return apperror.Conflict("a customer with email %s already exists", in.Email)
		}

		if err := s.customerRepo.Create(ctx, tx, customer); err != nil {
			return apperror.FromStore(err, "customer", 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("customer registered", zap.Uint("customer_id", customer.ID))
	return customer, nil
}

func (s *customerServiceImpl) GetCustomer(ctx context.Context, customerID uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, nil, customerID)
	if err != nil {
		return nil, apperror.FromStore(err, "customer", customerID)
	}
	return customer, nil
}

func (s *customerServiceImpl) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx)
}

// UpdateCustomer always accepts contact fields. Name and email are locked
// once any order references the customer.
func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, customerID uint, patch model.CustomerPatch) (*model.Customer, error) {
	patch = patch.Trimmed()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var customer *model.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.customerRepo.FindByID(ctx, tx, customerID)
		if err != nil {
			return apperror.FromStore(err, "customer", customerID)
		}

		if patch.ChangesIdentity(current) {
			referenced, err := s.orderRepo.ExistsForCustomer(ctx, tx, customerID)
			if err != nil {
				return fmt.Errorf("check orders of customer %d: %w", customerID, err)
			}
			if referenced {
				return apperror.Conflict("customer %d has orders; only phone and address can change", customerID)
			}
		}

		if patch.Email != nil {
			taken, err := s.customerRepo.EmailTaken(ctx, tx, *patch.Email, customerID)
			if err != nil {
				return fmt.Errorf("check customer email: %w", err)
			}
			if taken {
				return apperror.Conflict("a customer with email %s already exists", *patch.Email)
			}
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := s.customerRepo.Update(ctx, tx, customerID, cols); err != nil {
				return apperror.FromStore(err, "customer", customerID)
			}
		}

		customer, err = s.customerRepo.FindByID(ctx, tx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *customerServiceImpl) DeleteCustomer(ctx context.Context, customerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.customerRepo.FindByID(ctx, tx, customerID); err != nil {
			return apperror.FromStore(err, "customer", customerID)
		}

		referenced, err := s.orderRepo.ExistsForCustomer(ctx, tx, customerID)
		if err != nil {
			return fmt.Errorf("check orders of customer %d: %w", customerID, err)
		}
		if referenced {
			return apperror.Conflict("customer %d is referenced by orders and cannot be deleted", customerID)
		}

		if err := s.customerRepo.Delete(ctx, tx, customerID); err != nil {
			return fmt.Errorf("delete customer %d: %w", customerID, err)
		}
		return nil
	})
}
