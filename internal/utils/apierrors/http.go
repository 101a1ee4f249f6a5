package apierrors

import "net/http"

// ErrorTypeToHTTPStatus maps an error type to the HTTP status returned to clients.
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeUpstreamDown, ErrorTypeUpstreamBadStatus, ErrorTypeUpstreamMalformed:
		return http.StatusBadGateway
	case ErrorTypeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case ErrorTypeDecode, ErrorTypeDatabaseError, ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
