// apierrors стандартизирует ответы об ошибках HTTP-слоя.
// На вход — ошибка gRPC-слоя (status), на выход:
//   - HTTP-статус;
//   - короткий стабильный code и безопасное message.
//
// Источник истинности по маппингу ошибок домена: transport/grpc.
package apierrors

import (
	"encoding/json"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Нестандартный код «клиент закрыл соединение».
const StatusClientClosedRequest = 499

// APIError — единый формат для виджета.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
// nil и не-status ошибки дают 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	internal := ErrorResponse{Error: APIError{Code: "internal", Message: "internal error"}}

	if err == nil {
		return http.StatusInternalServerError, internal
	}

	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, internal
	}

	httpStatus, code, msg := baseFromGRPC(st.Code())
	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError пишет статус и тело; request_id берётся из X-Request-Id.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// InvalidArgument — локальная ошибка разбора запроса.
func InvalidArgument() error {
	return status.Error(codes.InvalidArgument, "invalid argument")
}

// baseFromGRPC — базовый маппинг gRPC -> HTTP/код/сообщение:
//   - InvalidArgument -> 400
//   - Unauthenticated -> 401
//   - PermissionDenied -> 403 (не модератор проекта)
//   - NotFound -> 404
//   - AlreadyExists, Aborted -> 409
//   - FailedPrecondition -> 412 (удалённый родитель, предел глубины)
//   - Canceled -> 499, DeadlineExceeded -> 504, Unavailable -> 503
//   - прочее -> 500
func baseFromGRPC(c codes.Code) (int, string, string) {
	switch c {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case codes.NotFound:
		return http.StatusNotFound, "not_found", "not found"
	case codes.AlreadyExists:
		return http.StatusConflict, "already_exists", "already exists"
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed, "failed_precondition", "failed precondition"
	case codes.Unauthenticated:
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case codes.PermissionDenied:
		return http.StatusForbidden, "permission_denied", "permission denied"
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests, "resource_exhausted", "resource exhausted"
	case codes.Aborted:
		return http.StatusConflict, "aborted", "aborted"
	case codes.Canceled:
		return StatusClientClosedRequest, "canceled", "canceled"
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case codes.Unavailable:
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	case codes.Unimplemented:
		return http.StatusNotImplemented, "unimplemented", "unimplemented"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
