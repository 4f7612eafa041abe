package response

import (
	"github.com/gin-gonic/gin"
)

// Error types carried in the "error" field of every error body.
const (
	TypeValidation      = "VALIDATION_ERROR"
	TypeUnprocessable   = "UNPROCESSABLE_ENTITY"
	TypeInvalidPassword = "INVALID_PASSWORD"
	TypeEmailTaken      = "EMAIL_ALREADY_TAKEN"
	TypeTooManyRequests = "TOO_MANY_REQUESTS"
	TypeInternal        = "INTERNAL_SERVER_ERROR"
)

// ErrorBody is the uniform error shape: {statusCode, error, message}.
// Details carries per-field validation messages when present.
type ErrorBody struct {
	StatusCode int               `json:"statusCode"`
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func Error(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorBody{StatusCode: status, Error: errType, Message: message})
}

func ErrorWithDetails(c *gin.Context, status int, errType, message string, details map[string]string) {
	c.JSON(status, ErrorBody{StatusCode: status, Error: errType, Message: message, Details: details})
}

// AbortError writes the error body and stops the handler chain; middleware
// uses it so the single error shape holds everywhere.
func AbortError(c *gin.Context, status int, errType, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{StatusCode: status, Error: errType, Message: message})
}
