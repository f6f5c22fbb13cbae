package middlewares

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORSMiddleware(csrfHeader string) gin.HandlerFunc {
	allowHeaders := []string{"Content-Type", "X-Requested-With"}
	if csrfHeader != "" {
		allowHeaders = append(allowHeaders, csrfHeader)
	}
	cfg := cors.Config{
		AllowOrigins:  []string{"*"}, // dev only; lock down for prod
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  allowHeaders,
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	return cors.New(cfg)
}
