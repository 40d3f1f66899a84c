package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"shopapi/internal/errors"
	"shopapi/internal/middleware"
	"shopapi/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the body of create and update. Price accepts a JSON
// number or a numeric string.
type ProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	ImageData   *string          `json:"imageData"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageData:   r.ImageData,
	}
}

// MessageResponse is a confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// List godoc
// @Summary List products, newest first
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, herr := parseID(c, "id", errors.ErrProductNotFound)
	if herr != nil {
		return herr
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return handleError(c, errors.ErrNoToken)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, errors.ErrInvalidBody)
	}

	product, err := h.productService.Create(c.Request().Context(), req.input(), claims.UserID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update a product
// @Description Name and price are replaced; description and imageData are kept when sent empty.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, errors.ErrInvalidBody)
	}

	id, herr := parseID(c, "id", errors.ErrProductNotFound)
	if herr != nil {
		return herr
	}

	product, err := h.productService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, herr := parseID(c, "id", errors.ErrProductNotFound)
	if herr != nil {
		return herr
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product removed"})
}
