package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fabricstore/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/server/http/dto"
	"github.com/polkiloo/fabricstore/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated caller from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	principal, _ := middleware.Principal(c)
	return principal
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var tooMany gateway.TooManyRequestsError
	switch {
	case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidState), errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrPaymentVerification):
		return http.StatusPaymentRequired
	case errors.As(err, &tooMany):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = http.StatusText(status)
	case http.StatusServiceUnavailable:
		var tooMany gateway.TooManyRequestsError
		if errors.As(err, &tooMany) && tooMany.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(tooMany.RetryAfter.Seconds())))
		}
		msg = "payment gateway is busy, try again later"
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
