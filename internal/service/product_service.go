package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/logging"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// maxPrice is the largest value a decimal(10,2) column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

// ProductInput is a create or update request. A nil Price means the field was absent.
type ProductInput struct {
	Name        string
	Price       *decimal.Decimal
	Description *string
	ImageData   *string
}

// ProductService handles product operations.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, in ProductInput, actorID uint) (*model.Product, error)
	Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// validate checks the required fields and normalises the price to cents.
func (in ProductInput) validate() (model.ProductChanges, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return model.ProductChanges{}, apperrors.ErrMissingProductFields
	}
	price := in.Price.Round(2)
	if price.IsNegative() || price.GreaterThan(maxPrice) {
		return model.ProductChanges{}, apperrors.ErrInvalidPrice
	}
	return model.ProductChanges{
		Name:        name,
		Price:       price,
		Description: in.Description,
		ImageData:   in.ImageData,
	}, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	logging.FromContext(ctx).Infof("Fetched %d products", len(products))
	return products, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).WithField("product_id", id).Warn("Attempt to fetch non-existent product")
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput, actorID uint) (*model.Product, error) {
	log := logging.FromContext(ctx).WithField("actor_id", actorID)
	changes, err := in.validate()
	if err != nil {
		log.WithError(err).Warn("Create product attempt with invalid fields")
		return nil, err
	}

	product := &model.Product{
		UserID:      actorID,
		Name:        changes.Name,
		Price:       changes.Price,
		Description: model.NullString(changes.Description),
		ImageData:   model.NullString(changes.ImageData),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	log.WithFields(logrus.Fields{"product_id": product.ID, "name": product.Name}).Info("New product created")
	return product, nil
}

// Update replaces name and price and merges the optional fields, see
// model.Product.Merge. The acting user's ownership is not checked.
func (s *productService) Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	log := logging.FromContext(ctx).WithField("product_id", id)
	changes, err := in.validate()
	if err != nil {
		log.WithError(err).Warn("Update product attempt with invalid fields")
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := existing.Merge(changes)
	n, err := s.repo.Update(ctx, &merged)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if n == 0 {
		return nil, apperrors.ErrProductNotFound
	}

	log.Info("Product updated")
	return &merged, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	log := logging.FromContext(ctx).WithField("product_id", id)
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if n == 0 {
		log.Warn("Delete attempt for non-existent product")
		return apperrors.ErrProductNotFound
	}
	log.Info("Product deleted")
	return nil
}
