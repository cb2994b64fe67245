package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/errors"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListResponse is the data of a paginated list.
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// ListSuccessResponse wraps items with their pagination metadata.
func ListSuccessResponse(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	SuccessResponse(c, http.StatusOK, "", ListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	})
}

// ErrorResponse writes an error envelope for middleware that has no
// AppError at hand. The type is derived from the status code.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	writeError(c, statusCode, ErrorInfo{
		Type:    string(errorTypeForStatus(statusCode)),
		Message: message,
	})
}

// ErrorResponseWithError maps an AppError (possibly wrapped) to its status.
// Any other error becomes a 500 whose text is not sent to the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		writeError(c, http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: constants.ErrMsgInternalServerError,
		})
		return
	}

	writeError(c, appErr.Code, ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

func writeError(c *gin.Context, statusCode int, info ErrorInfo) {
	c.JSON(statusCode, APIResponse{Success: false, Error: &info})
}

func errorTypeForStatus(statusCode int) errors.ErrorType {
	switch statusCode {
	case http.StatusBadRequest:
		return errors.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return errors.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return errors.ErrorTypeForbidden
	case http.StatusNotFound:
		return errors.ErrorTypeNotFound
	case http.StatusConflict:
		return errors.ErrorTypeConflict
	case http.StatusTooManyRequests:
		return errors.ErrorTypeRateLimited
	default:
		return errors.ErrorTypeInternal
	}
}
