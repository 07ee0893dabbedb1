package response

import "net/http"

// ErrorCode 统一业务错误码，随错误信封返回给前端
type ErrorCode string

const (
	Unauthorized    ErrorCode = "UNAUTHORIZED"
	Forbidden       ErrorCode = "FORBIDDEN"
	NotFound        ErrorCode = "NOT_FOUND"
	BadRequest      ErrorCode = "BAD_REQUEST"
	ValidationError ErrorCode = "VALIDATION_ERROR"
	InternalError   ErrorCode = "INTERNAL_ERROR"
	Conflict        ErrorCode = "CONFLICT"
	TooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	PayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// HTTPStatus 错误码到 HTTP 状态码的映射
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case BadRequest, ValidationError:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	case PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody 错误信封内层
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

// Response 统一响应信封: {success, data} 或 {success, error}
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ResponseOptions func(*Response)

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

func WithErrorBody(code ErrorCode, msg string, details any) ResponseOptions {
	return func(r *Response) {
		r.Success = false
		r.Error = &ErrorBody{Code: code, Message: msg, Details: details}
	}
}

func CustomResponse(opts ...ResponseOptions) Response {
	response := Response{Success: true}
	for _, opt := range opts {
		opt(&response)
	}
	return response
}

func SuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(code ErrorCode, msg string, details any) Response {
	return Response{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: msg, Details: details},
	}
}
