package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"checkout-service/internal/dto"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errAmbiguousUpdate       = errors.New("exactly one of change or quantity must be set")
	errIdempotencyKeyTooLong = errors.New("idempotency key is too long")
	errIdempotencyInFlight   = errors.New("a request with this idempotency key is still being processed")
)

// retryAfterSeconds отдаётся клиенту вместе с transaction_aborted и idempotency_in_progress.
const retryAfterSeconds = 1

type httpError struct {
	status int
	body   dto.BaseError
}

// toHTTPError переводит ошибку сервиса в HTTP-статус и тело ответа.
func toHTTPError(err error) httpError {
	var stock *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return httpError{http.StatusUnauthorized, dto.BaseError(dto.NewUnauthorizedError("authentication required"))}
	case errors.Is(err, service.ErrForbidden):
		return httpError{http.StatusForbidden, dto.BaseError(dto.NewForbiddenError("operation not permitted for this role"))}

	case errors.As(err, &stock):
		return httpError{http.StatusBadRequest, dto.BaseError(dto.NewBusinessError("insufficient_stock",
			fmt.Sprintf("not enough stock for %s", stock.ProductName),
			fmt.Sprintf("requested %d, available %d", stock.Requested, stock.Available)))}
	case errors.Is(err, service.ErrInsufficientStock):
		return business("insufficient_stock", err)
	case errors.Is(err, service.ErrEmptyCart):
		return business("empty_cart", err)
	case errors.Is(err, service.ErrInvalidAddress):
		return business("invalid_address", err)
	case errors.Is(err, service.ErrProductUnavailable):
		return business("product_unavailable", err)
	case errors.Is(err, service.ErrRefundNotAllowed):
		return business("refund_not_allowed", err)
	case errors.Is(err, service.ErrRefundEmpty), errors.Is(err, service.ErrRefundQuantity):
		return business("invalid_refund", err)
	case errors.Is(err, service.ErrQuantityInvalid), errors.Is(err, service.ErrInvalidProduct):
		return httpError{http.StatusBadRequest, dto.BaseError(dto.NewValidationError(err.Error(), nil))}

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrOrderItemNotFound),
		errors.Is(err, service.ErrRefundNotFound):
		return httpError{http.StatusNotFound, dto.BaseError(dto.NewNotFoundError(err.Error()))}

	case errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrSKUAlreadyExists),
		errors.Is(err, service.ErrProductInUse):
		return httpError{http.StatusConflict, dto.BaseError(dto.NewConflictError("conflict", err.Error()))}
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrRefundTransition):
		return httpError{http.StatusConflict, dto.BaseError(dto.NewConflictError("invalid_transition", err.Error()))}
	case errors.Is(err, errIdempotencyInFlight):
		return httpError{http.StatusConflict, dto.BaseError(dto.NewConflictError("idempotency_in_progress", err.Error()))}
	case errors.Is(err, service.ErrTransactionAborted):
		return httpError{http.StatusConflict, dto.BaseError(dto.NewConflictError("transaction_aborted", service.ErrTransactionAborted.Error()))}

	case errors.Is(err, service.ErrImmutableOrder):
		return httpError{http.StatusInternalServerError, dto.BaseError(dto.NewInternalError("immutable_order"))}
	default:
		return httpError{http.StatusInternalServerError, dto.BaseError(dto.NewInternalError(""))}
	}
}

func business(code string, err error) httpError {
	return httpError{http.StatusBadRequest, dto.BaseError(dto.NewBusinessError(code, err.Error(), ""))}
}

func writeError(c *gin.Context, log *zap.Logger, op string, err error) {
	he := toHTTPError(err)
	if he.body.Code == "transaction_aborted" || he.body.Code == "idempotency_in_progress" {
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	if he.status >= http.StatusInternalServerError {
		log.Error("failed", zap.String("op", op), zap.Error(err))
	} else {
		log.Warn("failed", zap.String("op", op), zap.String("code", he.body.Code), zap.Error(err))
	}
	c.AbortWithStatusJSON(he.status, he.body)
}

func badRequest(c *gin.Context, log *zap.Logger, op string, err error) {
	log.Warn("Invalid request", zap.String("op", op), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationError("invalid id",
			[]dto.FieldError{{Field: name, Message: "must be a uuid", Tag: "uuid"}}))
		return uuid.Nil, false
	}
	return id, true
}

// page читает limit/offset из query; мусор заменяется значениями по умолчанию.
func page(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
