package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      ProductInput
		wantErr error
	}{
		{name: "missing name", in: ProductInput{Price: decPtr("1")}, wantErr: apperrors.ErrMissingProductFields},
		{name: "blank name", in: ProductInput{Name: "  ", Price: decPtr("1")}, wantErr: apperrors.ErrMissingProductFields},
		{name: "missing price", in: ProductInput{Name: "X"}, wantErr: apperrors.ErrMissingProductFields},
		{name: "negative price", in: ProductInput{Name: "X", Price: decPtr("-0.01")}, wantErr: apperrors.ErrInvalidPrice},
		{name: "price too large", in: ProductInput{Name: "X", Price: decPtr("100000000")}, wantErr: apperrors.ErrInvalidPrice},
		{name: "zero price", in: ProductInput{Name: "X", Price: decPtr("0")}},
		{name: "valid", in: ProductInput{Name: "X", Price: decPtr("9.99")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProductService_Create(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*model.Product)
			p.ID = 3
			p.CreatedAt = time.Now()
			p.UpdatedAt = p.CreatedAt
		}).
		Return(nil)

	product, err := svc.Create(context.Background(), ProductInput{
		Name:        "X",
		Price:       decPtr("9.999"),
		Description: strPtr(""),
	}, 7)
	require.NoError(t, err)

	assert.Equal(t, uint(3), product.ID)
	assert.Equal(t, uint(7), product.UserID)
	assert.Equal(t, "X", product.Name)
	assert.Equal(t, "10", product.Price.String(), "price rounds to cents")
	assert.Nil(t, product.Description, "empty optional stored as NULL")
	assert.Nil(t, product.ImageData)
	assert.False(t, product.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestProductService_Create_Invalid(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	_, err := svc.Create(context.Background(), ProductInput{Name: "X"}, 1)
	assert.ErrorIs(t, err, apperrors.ErrMissingProductFields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_Get(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.Product{ID: 1, Name: "A"}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByID", mock.Anything, uint(3)).Return(nil, errors.New("broken pipe"))

	p, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	_, err = svc.Get(context.Background(), 3)
	assert.True(t, apperrors.IsInternal(err))
}

func TestProductService_Update(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	stored := &model.Product{
		ID:          4,
		UserID:      2,
		Name:        "Old",
		Description: strPtr("kept"),
		Price:       decimal.RequireFromString("1.00"),
		ImageData:   strPtr("img"),
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	repo.On("FindByID", mock.Anything, uint(4)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID == 4 && p.Name == "New" && *p.Description == "kept" && *p.ImageData == "new-img"
	})).Return(int64(1), nil)

	updated, err := svc.Update(context.Background(), 4, ProductInput{
		Name:      "New",
		Price:     decPtr("2.5"),
		ImageData: strPtr("new-img"),
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "2.5", updated.Price.String())
	assert.Equal(t, "kept", *updated.Description)
	assert.Equal(t, "new-img", *updated.ImageData)
	assert.Equal(t, uint(2), updated.UserID)
	assert.Equal(t, created, updated.CreatedAt)
	repo.AssertExpectations(t)
}

func TestProductService_Update_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), 99, ProductInput{Name: "X", Price: decPtr("1")})
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_Update_DeletedMeanwhile(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	repo.On("FindByID", mock.Anything, uint(5)).Return(&model.Product{ID: 5, Name: "A"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(int64(0), nil)

	_, err := svc.Update(context.Background(), 5, ProductInput{Name: "X", Price: decPtr("1")})
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestProductService_Update_ValidatesBeforeLookup(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	_, err := svc.Update(context.Background(), 1, ProductInput{Price: decPtr("1")})
	assert.ErrorIs(t, err, apperrors.ErrMissingProductFields)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductService_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	repo.On("Delete", mock.Anything, uint(1)).Return(int64(1), nil)
	repo.On("Delete", mock.Anything, uint(2)).Return(int64(0), nil)

	assert.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), apperrors.ErrProductNotFound)
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	repo.On("List", mock.Anything).Return([]model.Product{{ID: 2}, {ID: 1}}, nil)

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
