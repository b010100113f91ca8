package handlers

import (
	"net/http"

	"checkout-service/internal/dto"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListCategories godoc
// @Summary Список категорий
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "ListCategories", err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.NewCategoryResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreateCategory godoc
// @Summary Создать категорию
// @Description Только для администратора. Slug генерируется из названия.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Категория уже существует"
// @Router /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "CreateCategory", err)
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, h.log, "CreateCategory", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(cat))
}

// ListProducts godoc
// @Summary Каталог товаров
// @Description Активные товары; администратор может запросить и неактивные через include_inactive=true
// @Tags catalog
// @Produce json
// @Param category query string false "slug категории"
// @Param q query string false "поиск по названию"
// @Param include_inactive query bool false "только для администратора"
// @Param limit query int false "по умолчанию 20, максимум 100"
// @Param offset query int false "смещение"
// @Success 200 {object} dto.ProductListResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	limit, offset := page(c)
	list, total, err := h.catalog.ListProducts(c.Request.Context(), service.ProductListFilter{
		CategorySlug:    c.Query("category"),
		Query:           c.Query("q"),
		IncludeInactive: c.Query("include_inactive") == "true",
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		writeError(c, h.log, "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductList(list, total, limit, offset))
}

// GetProduct godoc
// @Summary Карточка товара
// @Tags catalog
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// CreateProduct godoc
// @Summary Создать товар
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Failure 409 {object} dto.ConflictErrorResponse "SKU уже занят"
// @Router /api/v1/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "CreateProduct", err)
		return
	}
	in := service.ProductInput{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		TaxPercent:    req.TaxPercent,
		Stock:         req.Stock,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if req.CategoryID != nil {
		cid := uuid.MustParse(*req.CategoryID)
		in.CategoryID = &cid
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(p))
}

// UpdateProduct godoc
// @Summary Изменить товар
// @Description Частичное обновление. Уже оформленные заказы не меняются.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param product body dto.UpdateProductRequest true "Изменения"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/v1/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "UpdateProduct", err)
		return
	}
	patch := service.ProductPatch{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		ClearDiscount: req.ClearDiscount,
		TaxPercent:    req.TaxPercent,
		IsActive:      req.IsActive,
	}
	if req.CategoryID != nil {
		cid := uuid.MustParse(*req.CategoryID)
		patch.CategoryID = &cid
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, h.log, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// Restock godoc
// @Summary Изменить остаток
// @Description delta прибавляется к остатку (может быть отрицательной), результат не может уйти ниже нуля
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param restock body dto.RestockRequest true "Изменение остатка"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.BusinessErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/products/{id}/restock [post]
func (h *CatalogHandler) Restock(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "Restock", err)
		return
	}
	p, err := h.catalog.Restock(c.Request.Context(), id, req.Delta)
	if err != nil {
		writeError(c, h.log, "Restock", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// DeleteProduct godoc
// @Summary Удалить товар
// @Description Товар, на который ссылаются заказы, удалить нельзя: его нужно деактивировать
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 204
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Товар используется в заказах"
// @Router /api/v1/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, "DeleteProduct", err)
		return
	}
	c.Status(http.StatusNoContent)
}
