package httperr

import (
	"errors"
	"net/http"

	"rental-booking/internal/domain/otp"
	"rental-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalMessage = "Internal server error"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a usecase error to its HTTP status. Uncategorized errors become a
// generic 500 so storage details never reach the client.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := internalMessage
	if status != http.StatusInternalServerError {
		msg = err.Error()
	}
	AbortWithError(c, status, err, msg, nil)
}

// AbortBinding reports a request that failed binding or validation.
func AbortBinding(c *gin.Context, err error) {
	AbortWithError(c, http.StatusBadRequest, err, "Invalid request", bindingDetail(err))
}

func StatusOf(err error) int {
	switch errs.Category(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrUnauthorized:
		return http.StatusForbidden
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrConflict:
		return http.StatusConflict
	case errs.ErrPolicyViolation, errs.ErrAmountExceeded:
		return http.StatusUnprocessableEntity
	case errs.ErrNotRefundable:
		return http.StatusConflict
	case errs.ErrSecurity:
		if errs.Is(err, otp.ErrMaxAttemptsExceeded) {
			return http.StatusTooManyRequests
		}
		if errs.Is(err, otp.ErrChallengeExpired) {
			return http.StatusGone
		}
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// bindingDetail lists failing fields by their validation tag.
func bindingDetail(err error) any {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
