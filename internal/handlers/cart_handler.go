package handlers

import (
	"net/http"

	"checkout-service/internal/dto"
	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

// GetCart godoc
// @Summary Корзина текущего пользователя
// @Description Цены и итоги считаются по текущему каталогу
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cart.GetCart(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "GetCart", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(view.Cart, view.Totals))
}

// ClearCart godoc
// @Summary Очистить корзину
// @Tags cart
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		writeError(c, h.log, "ClearCart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem godoc
// @Summary Добавить товар в корзину
// @Description Повторное добавление того же товара увеличивает количество в существующей строке
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body dto.AddCartItemRequest true "Товар и количество"
// @Success 201 {object} dto.CartItemResponse
// @Failure 400 {object} dto.BusinessErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "AddItem", err)
		return
	}
	item, err := h.cart.AddItem(c.Request.Context(), uuid.MustParse(req.ProductID), req.Quantity)
	if err != nil {
		writeError(c, h.log, "AddItem", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCartItemResponse(item))
}

// UpdateItem godoc
// @Summary Изменить количество
// @Description change задает относительное изменение, quantity задает новое значение. Ноль и меньше удаляет строку.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID строки корзины"
// @Param item body dto.UpdateCartItemRequest true "change или quantity"
// @Success 200 {object} dto.UpdateCartItemResponse
// @Failure 400 {object} dto.BusinessErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "UpdateItem", err)
		return
	}
	if (req.Change == nil) == (req.Quantity == nil) {
		badRequest(c, h.log, "UpdateItem", errAmbiguousUpdate)
		return
	}

	var (
		item    *models.CartItem
		removed bool
		err     error
	)
	if req.Change != nil {
		item, removed, err = h.cart.UpdateItem(c.Request.Context(), id, *req.Change)
	} else {
		item, removed, err = h.cart.SetItemQuantity(c.Request.Context(), id, *req.Quantity)
	}
	if err != nil {
		writeError(c, h.log, "UpdateItem", err)
		return
	}

	resp := dto.UpdateCartItemResponse{Removed: removed}
	if item != nil && !removed {
		ir := dto.NewCartItemResponse(item)
		resp.Item = &ir
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem godoc
// @Summary Удалить строку корзины
// @Tags cart
// @Security BearerAuth
// @Param id path string true "ID строки корзины"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.cart.RemoveItem(c.Request.Context(), id); err != nil {
		writeError(c, h.log, "RemoveItem", err)
		return
	}
	c.Status(http.StatusNoContent)
}
