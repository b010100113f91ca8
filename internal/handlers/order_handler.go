package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"checkout-service/internal/cache"
	"checkout-service/internal/dto"
	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
	// claim живёт дольше одной попытки оформления, но истекает, если процесс упал
	idempotencyClaimTTL = time.Minute
)

// IdempotencyStore хранит успешные ответы оформления заказа по (пользователь, ключ).
// Claim/Release не дают двум запросам с одним ключом выполняться одновременно.
type IdempotencyStore interface {
	LookupIdempotent(ctx context.Context, userID uuid.UUID, key string) (*cache.IdempotentResponse, error)
	RememberIdempotent(ctx context.Context, userID uuid.UUID, key string, resp cache.IdempotentResponse, ttl time.Duration) error
	ClaimIdempotent(ctx context.Context, userID uuid.UUID, key string, ttl time.Duration) (bool, error)
	ReleaseIdempotent(ctx context.Context, userID uuid.UUID, key string) error
}

type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
	idem     IdempotencyStore
	idemTTL  time.Duration
	log      *zap.Logger
}

// NewOrderHandler: idem может быть nil, тогда Idempotency-Key игнорируется.
func NewOrderHandler(checkout service.CheckoutService, orders service.OrderService, idem IdempotencyStore, idemTTL time.Duration, log *zap.Logger) *OrderHandler {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &OrderHandler{checkout: checkout, orders: orders, idem: idem, idemTTL: idemTTL, log: log}
}

// PlaceOrder godoc
// @Summary Оформить заказ из корзины
// @Description Фиксирует цены и налоги, списывает остатки и очищает корзину одной транзакцией.
// @Description При конфликте транзакции (409 transaction_aborted) запрос можно безопасно повторить.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "повтор с тем же ключом вернёт сохранённый ответ"
// @Param order body dto.PlaceOrderRequest true "Данные доставки"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.BusinessErrorResponse "empty_cart / invalid_address / insufficient_stock"
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "transaction_aborted / idempotency_in_progress"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	ctx := c.Request.Context()

	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		badRequest(c, h.log, "PlaceOrder", errIdempotencyKeyTooLong)
		return
	}
	userID, _ := service.UserIDFromContext(ctx)
	useIdem := key != "" && h.idem != nil && userID != uuid.Nil

	if useIdem && h.replay(c, userID, key) {
		return
	}

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "PlaceOrder", err)
		return
	}

	if useIdem {
		claimed, err := h.idem.ClaimIdempotent(ctx, userID, key, idempotencyClaimTTL)
		switch {
		case err != nil:
			h.log.Warn("idempotency claim failed", zap.String("key", key), zap.Error(err))
		case !claimed:
			// параллельный запрос мог успеть завершиться между lookup и claim
			if h.replay(c, userID, key) {
				return
			}
			writeError(c, h.log, "PlaceOrder", errIdempotencyInFlight)
			return
		default:
			defer func() {
				if err := h.idem.ReleaseIdempotent(context.WithoutCancel(ctx), userID, key); err != nil {
					h.log.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
				}
			}()
		}
	}

	order, err := h.checkout.PlaceOrder(ctx, service.ShippingInfo{
		Address:    req.ShippingAddress,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, h.log, "PlaceOrder", err)
		return
	}

	body, err := json.Marshal(dto.NewOrderResponse(order))
	if err != nil {
		writeError(c, h.log, "PlaceOrder", err)
		return
	}
	if useIdem {
		resp := cache.IdempotentResponse{Status: http.StatusCreated, Body: body}
		if err := h.idem.RememberIdempotent(ctx, userID, key, resp, h.idemTTL); err != nil {
			h.log.Warn("idempotency store failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

// replay отдаёт сохранённый ответ, если он есть.
func (h *OrderHandler) replay(c *gin.Context, userID uuid.UUID, key string) bool {
	stored, err := h.idem.LookupIdempotent(c.Request.Context(), userID, key)
	if err != nil {
		h.log.Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if stored == nil {
		return false
	}
	c.Header(HeaderReplayed, "true")
	c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
	return true
}

// ListOrders godoc
// @Summary Список заказов
// @Description Покупатель видит только свои заказы; администратор может фильтровать по user_id
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "статус заказа"
// @Param user_id query string false "только для администратора"
// @Param limit query int false "по умолчанию 20"
// @Param offset query int false "смещение"
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, offset := page(c)
	f := service.ListFilter{Limit: limit, Offset: offset}

	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(strings.ToUpper(s))
		if !st.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationError("invalid status",
				[]dto.FieldError{{Field: "status", Message: "unknown order status", Tag: "oneof"}}))
			return
		}
		f.Status = &st
	}
	if s := c.Query("user_id"); s != "" {
		uid, err := uuid.Parse(s)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationError("invalid user_id",
				[]dto.FieldError{{Field: "user_id", Message: "must be a uuid", Tag: "uuid"}}))
			return
		}
		f.UserID = &uid
	}

	list, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, "ListOrders", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(list, total, limit, offset))
}

// GetOrder godoc
// @Summary Заказ по ID
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "GetOrder", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// GetOrderByNumber godoc
// @Summary Заказ по номеру
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param number path string true "Номер заказа, например ORD-A1B2C3D4E5"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/by-number/{number} [get]
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	o, err := h.orders.GetOrderByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, h.log, "GetOrderByNumber", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// BulkCancel godoc
// @Summary Массовая отмена заказов
// @Description Отменяются только заказы в DRAFT/PENDING, остатки возвращаются на склад. Остальные попадают в skipped.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cancel body dto.BulkCancelRequest true "Заказы и причина"
// @Success 200 {object} dto.BulkCancelResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/v1/admin/orders/cancel [post]
func (h *OrderHandler) BulkCancel(c *gin.Context) {
	var req dto.BulkCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "BulkCancel", err)
		return
	}
	ids := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, s := range req.OrderIDs {
		ids = append(ids, uuid.MustParse(s))
	}
	res, err := h.orders.BulkCancel(c.Request.Context(), ids, req.Reason)
	if err != nil {
		writeError(c, h.log, "BulkCancel", err)
		return
	}

	out := dto.BulkCancelResponse{
		Cancelled: make([]string, 0, len(res.Cancelled)),
		Skipped:   make([]dto.BulkCancelSkipped, 0, len(res.Skipped)),
	}
	for _, id := range res.Cancelled {
		out.Cancelled = append(out.Cancelled, id.String())
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, dto.BulkCancelSkipped{OrderID: s.OrderID.String(), Reason: s.Reason})
	}
	c.JSON(http.StatusOK, out)
}

// MarkPaid godoc
// @Summary Подтвердить оплату
// @Description Точка входа для платёжного провайдера: PENDING/DRAFT -> PAID
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param payment body dto.MarkPaidRequest true "Провайдер и референс"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "invalid_transition"
// @Router /api/v1/admin/orders/{id}/pay [post]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "MarkPaid", err)
		return
	}
	o, err := h.orders.MarkAsPaid(c.Request.Context(), id, req.Provider, req.Reference)
	if err != nil {
		writeError(c, h.log, "MarkPaid", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// AdvanceStatus godoc
// @Summary Перевести заказ в следующий статус
// @Description PAID, CANCELLED и REFUNDED выставляются только своими операциями
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param status body dto.AdvanceStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "invalid_transition"
// @Router /api/v1/admin/orders/{id}/status [post]
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "AdvanceStatus", err)
		return
	}
	o, err := h.orders.AdvanceStatus(c.Request.Context(), id, models.OrderStatus(strings.ToUpper(req.Status)))
	if err != nil {
		writeError(c, h.log, "AdvanceStatus", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// RecalculateTotals godoc
// @Summary Пересчитать итоги заказа
// @Description Только для DRAFT/PENDING; итоги считаются по зафиксированным строкам заказа
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse "immutable_order"
// @Router /api/v1/admin/orders/{id}/recalculate [post]
func (h *OrderHandler) RecalculateTotals(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.RecalculateTotals(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "RecalculateTotals", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}
