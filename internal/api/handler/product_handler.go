package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
)

// ProductHandler handles product endpoints. Ownership checks for Update
// and Delete run in the authorization middleware before these are reached.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products (public).
//
// @Summary      List the public product catalog
// @Tags         products
// @Produce      json
// @Success      200  {array}  productListingResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	listings, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]productListingResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, productListingResponse{
			ID:          l.Product.ID,
			Name:        l.Product.Name,
			Description: l.Product.Description,
			Price:       l.Product.Price,
			OwnerID:     l.Product.OwnerID,
			OwnerName:   l.OwnerName,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// ListMine handles GET /api/products/my-products.
//
// @Summary      List the authenticated user's products
// @Tags         products
// @Produce      json
// @Success      200  {array}   productResponse
// @Failure      401  {object}  errorDetails
// @Router       /api/products/my-products [get]
func (h *ProductHandler) ListMine(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	products, err := h.service.ListByOwner(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/products. The owner is always the caller.
//
// @Summary      Create a product owned by the authenticated user
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorDetails
// @Failure      401   {object}  errorDetails
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OwnerID:     caller.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update handles PUT /api/products/:id (owner or admin).
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  productResponse
// @Failure      403   {object}  errorDetails
// @Failure      404   {object}  errorDetails
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /api/products/:id (owner or admin).
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorDetails
// @Failure      404  {object}  errorDetails
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
