package service

import (
	"context"
	"fmt"
	"sort"
	"storefront-api/internal/apperror"
	"storefront-api/internal/logger"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string
	Description *string
	Active      *bool
}

type CatalogService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, categoryID uint) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID uint, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID uint) error

	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, productID uint, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error

	// SeedCatalog loads a small demo catalog into an empty store.
	SeedCatalog(ctx context.Context) error
}

type catalogServiceImpl struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
}

func NewCatalogService(
	db *gorm.DB,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) CatalogService {
	return &catalogServiceImpl{
		db:           db,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, in CategoryInput) (*model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperror.InvalidArgument("category name must not be empty")
	}

	category := &model.Category{
		Name:        in.Name,
		Description: in.Description,
		Active:      boolOr(in.Active, true),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.categoryRepo.NameTaken(ctx, tx, in.Name, 0)
		if err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if taken {
			return apperror.Conflict("category %q already exists", in.Name)
		}

		if err := s.categoryRepo.Create(ctx, tx, category); err != nil {
			return apperror.FromStore(err, "category", 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *catalogServiceImpl) GetCategory(ctx context.Context, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, nil, categoryID)
	if err != nil {
		return nil, apperror.FromStore(err, "category", categoryID)
	}
	return category, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, categoryID uint, patch model.CategoryPatch) (*model.Category, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var category *model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.categoryRepo.FindByID(ctx, tx, categoryID); err != nil {
			return apperror.FromStore(err, "category", categoryID)
		}

		if patch.Name != nil {
			taken, err := s.categoryRepo.NameTaken(ctx, tx, *patch.Name, categoryID)
			if err != nil {
				return fmt.Errorf("check category name: %w", err)
			}
			if taken {
				return apperror.Conflict("category %q already exists", *patch.Name)
			}
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := s.categoryRepo.Update(ctx, tx, categoryID, cols); err != nil {
				return apperror.FromStore(err, "category", categoryID)
			}
		}

		var err error
		category, err = s.categoryRepo.FindByID(ctx, tx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, categoryID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.categoryRepo.FindByID(ctx, tx, categoryID); err != nil {
			return apperror.FromStore(err, "category", categoryID)
		}

		if err := s.categoryRepo.Delete(ctx, tx, categoryID); err != nil {
			return fmt.Errorf("delete category %d: %w", categoryID, err)
		}
		return nil
	})
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:              in.Name,
		Description:       in.Description,
		Price:             model.Money(in.Price),
		AvailableQuantity: in.AvailableQuantity,
		Active:            boolOr(in.Active, true),
		ImageURL:          in.ImageURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryIDs, err := s.resolveCategories(ctx, tx, in.CategoryIDs)
		if err != nil {
			return err
		}

		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("store product in db: %w", err)
		}

		if err := s.productRepo.ReplaceCategories(ctx, tx, product.ID, categoryIDs); err != nil {
			return fmt.Errorf("link product %d categories: %w", product.ID, err)
		}

		product.Categories, err = s.productRepo.Categories(ctx, tx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("product created",
		zap.Uint("product_id", product.ID),
		zap.String("price", product.Price.StringFixed(model.MoneyPlaces)))

	return product, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, nil, productID)
	if err != nil {
		return nil, apperror.FromStore(err, "product", productID)
	}

	product.Categories, err = s.productRepo.Categories(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("load categories of product %d: %w", productID, err)
	}

	return product, nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, activeOnly bool) ([]*model.Product, error) {
	return s.productRepo.List(ctx, activeOnly)
}

// UpdateProduct never touches existing order lines; their unit price stays
// frozen at the value captured when the line was added.
func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID uint, patch model.ProductPatch) (*model.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var product *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.productRepo.FindByID(ctx, tx, productID); err != nil {
			return apperror.FromStore(err, "product", productID)
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := s.productRepo.Update(ctx, tx, productID, cols); err != nil {
				return fmt.Errorf("update product %d: %w", productID, err)
			}
		}

		if patch.CategoryIDs != nil {
			categoryIDs, err := s.resolveCategories(ctx, tx, patch.CategoryIDs)
			if err != nil {
				return err
			}
			if err := s.productRepo.ReplaceCategories(ctx, tx, productID, categoryIDs); err != nil {
				return fmt.Errorf("link product %d categories: %w", productID, err)
			}
		}

		var err error
		product, err = s.productRepo.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		product.Categories, err = s.productRepo.Categories(ctx, tx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.productRepo.FindByID(ctx, tx, productID); err != nil {
			return apperror.FromStore(err, "product", productID)
		}

		referenced, err := s.orderRepo.LinesExistForProduct(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("check order lines of product %d: %w", productID, err)
		}
		if referenced {
			return apperror.Conflict("product %d is referenced by order lines and cannot be deleted", productID)
		}

		if err := s.productRepo.Delete(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete product %d: %w", productID, err)
		}
		return nil
	})
}

var seedCategories = []model.Category{
	{Name: "Beverages", Active: true},
	{Name: "Bakery", Active: true},
	{Name: "Household", Active: true},
}

var seedProducts = []struct {
	input    model.ProductInput
	category string
}{
	{model.ProductInput{Name: "Cold brew coffee", Price: decimal.RequireFromString("4.50"), AvailableQuantity: 120}, "Beverages"},
	{model.ProductInput{Name: "Sparkling water", Price: decimal.RequireFromString("1.25"), AvailableQuantity: 300}, "Beverages"},
	{model.ProductInput{Name: "Sourdough loaf", Price: decimal.RequireFromString("6.00"), AvailableQuantity: 40}, "Bakery"},
	{model.ProductInput{Name: "Dish soap", Price: decimal.RequireFromString("3.99"), AvailableQuantity: 75}, "Household"},
}

func (s *catalogServiceImpl) SeedCatalog(ctx context.Context) error {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		logger.FromContext(ctx).Debug("catalog already populated, skipping seed", zap.Int64("products", count))
		return nil
	}

	if err := s.categoryRepo.Seed(ctx, append([]model.Category(nil), seedCategories...)); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	for _, p := range seedProducts {
		in := p.input
		if id, ok := byName[p.category]; ok {
			in.CategoryIDs = []uint{id}
		}
		if _, err := s.CreateProduct(ctx, in); err != nil {
			return fmt.Errorf("seed product %q: %w", in.Name, err)
		}
	}

	logger.FromContext(ctx).Info("catalog seeded", zap.Int("products", len(seedProducts)))
	return nil
}

// resolveCategories dedupes ids and checks that each one exists.
func (s *catalogServiceImpl) resolveCategories(ctx context.Context, tx *gorm.DB, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	categories, err := s.categoryRepo.FindMany(ctx, tx, unique)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	if len(categories) != len(unique) {
		for i, c := range categories {
			if c.ID != unique[i] {
				return nil, apperror.NotFound("category %d not found", unique[i])
			}
		}
		return nil, apperror.NotFound("category %d not found", unique[len(categories)])
	}

	return unique, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
