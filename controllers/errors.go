package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/pkg/resp"
)

// writeBackendError maps client errors onto the page contract: session
// expiry becomes a reload directive, business-rule rejections surface the
// backend's message verbatim, everything else is a plain server error.
func writeBackendError(c *gin.Context, err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		resp.SessionExpired(c)
	case errors.As(err, &apiErr):
		resp.BadRequest(c, apiErr.Message)
	default:
		resp.ServerError(c, err)
	}
}
