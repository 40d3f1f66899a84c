package repository

import (
	"context"

	"gorm.io/gorm"

	"shopapi/internal/model"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	// List returns every product, newest first.
	List(ctx context.Context) ([]model.Product, error)
	// Update writes the mutable fields of product and reports how many rows matched.
	Update(ctx context.Context, product *model.Product) (int64, error)
	// Delete reports how many rows were removed.
	Delete(ctx context.Context, id uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update never inserts, unlike Save, so a product deleted concurrently stays deleted.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (int64, error) {
	res := r.db.WithContext(ctx).Model(product).
		Select("name", "description", "price", "imageData", "updated_at").
		Updates(product)
	return res.RowsAffected, res.Error
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	return res.RowsAffected, res.Error
}
