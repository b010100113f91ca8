package dto

// BaseError единый формат ошибки API
// Code: машинно-ориентированный код (snake_case)
// Message: краткое описание для человека
// Details: дополнительная информация (например, какой товар закончился)
// Fields: ошибки валидации по полям
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError ошибка конкретного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Семантические псевдонимы для swagger @Failure, JSON у всех одинаковый.

// ValidationErrorResponse 400, Code: "validation_error"
type ValidationErrorResponse BaseError

// BusinessErrorResponse 400, бизнес-отказ: пустая корзина, нет адреса, не хватает товара
type BusinessErrorResponse BaseError

// UnauthorizedErrorResponse 401, Code: "unauthorized"
type UnauthorizedErrorResponse BaseError

// ForbiddenErrorResponse 403, Code: "forbidden"
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404, Code: "not_found"
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409: недопустимый переход статуса, дубликат, конфликт транзакции
type ConflictErrorResponse BaseError

// InternalErrorResponse 500, Code: "internal_error"
type InternalErrorResponse BaseError

// UnavailableErrorResponse 503, Code: "unavailable"
type UnavailableErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewBusinessError(code, msg, details string) BusinessErrorResponse {
	return BusinessErrorResponse(BaseError{Code: code, Message: msg, Details: details})
}
func NewConflictError(code, msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: code, Message: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
func NewUnavailableError(msg string) UnavailableErrorResponse {
	return UnavailableErrorResponse(BaseError{Code: "unavailable", Message: msg})
}
