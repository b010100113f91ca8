package handlers

import (
	"net/http"

	"checkout-service/internal/dto"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefundHandler struct {
	refunds service.RefundService
	log     *zap.Logger
}

func NewRefundHandler(refunds service.RefundService, log *zap.Logger) *RefundHandler {
	return &RefundHandler{refunds: refunds, log: log}
}

// RequestRefund godoc
// @Summary Оформить возврат по заказу
// @Description Сумма считается по зафиксированным строкам заказа. Строки заказа не меняются.
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param refund body dto.RefundRequest true "Строки и количество"
// @Success 201 {object} dto.RefundResponse
// @Failure 400 {object} dto.BusinessErrorResponse "refund_not_allowed / invalid_refund"
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id}/refunds [post]
func (h *RefundHandler) RequestRefund(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "RequestRefund", err)
		return
	}
	in := service.RefundInput{Reason: req.Reason, Items: make([]service.RefundItemInput, 0, len(req.Items))}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.RefundItemInput{
			OrderItemID: uuid.MustParse(it.OrderItemID),
			Quantity:    it.Quantity,
		})
	}
	rf, err := h.refunds.RequestRefund(c.Request.Context(), orderID, in)
	if err != nil {
		writeError(c, h.log, "RequestRefund", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRefundResponse(rf))
}

// ListRefunds godoc
// @Summary Возвраты по заказу
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {array} dto.RefundResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id}/refunds [get]
func (h *RefundHandler) ListRefunds(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	list, err := h.refunds.ListRefunds(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, h.log, "ListRefunds", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRefundList(list))
}

// MarkProcessing godoc
// @Summary Возврат в обработке
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID возврата"
// @Success 200 {object} dto.RefundResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "invalid_transition"
// @Router /api/v1/admin/refunds/{id}/processing [post]
func (h *RefundHandler) MarkProcessing(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rf, err := h.refunds.MarkRefundProcessing(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "MarkRefundProcessing", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRefundResponse(rf))
}

// Complete godoc
// @Summary Возврат выполнен
// @Description Когда выполненные возвраты покрывают сумму заказа, заказ переходит в REFUNDED
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID возврата"
// @Param refund body dto.CompleteRefundRequest false "Провайдер и референс"
// @Success 200 {object} dto.RefundResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "invalid_transition"
// @Router /api/v1/admin/refunds/{id}/complete [post]
func (h *RefundHandler) Complete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CompleteRefundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, h.log, "CompleteRefund", err)
			return
		}
	}
	rf, err := h.refunds.CompleteRefund(c.Request.Context(), id, req.Provider, req.Reference)
	if err != nil {
		writeError(c, h.log, "CompleteRefund", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRefundResponse(rf))
}

// Fail godoc
// @Summary Возврат не удался
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID возврата"
// @Param refund body dto.FailRefundRequest false "Причина"
// @Success 200 {object} dto.RefundResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "invalid_transition"
// @Router /api/v1/admin/refunds/{id}/fail [post]
func (h *RefundHandler) Fail(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.FailRefundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, h.log, "FailRefund", err)
			return
		}
	}
	rf, err := h.refunds.FailRefund(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, h.log, "FailRefund", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRefundResponse(rf))
}
