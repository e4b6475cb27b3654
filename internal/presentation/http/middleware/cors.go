package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storefront-pos/internal/config"
)

// Headers the till must be allowed to send
var tillRequestHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"Origin",
	"X-Request-ID",
	IdempotencyKeyHeader,
}

// Headers the till reads from responses: replay and throttling signals,
// and the filename of report downloads
var tillExposedHeaders = []string{
	"Content-Disposition",
	"Content-Length",
	"Content-Type",
	"Retry-After",
	"X-Idempotency-Replayed",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-Request-ID",
}

// CORSMiddleware lets the till front-end, usually served from another
// origin on the shop's network, call the API. An origin of "*" opens the
// API to every origin; sessions travel as bearer tokens, so no cookies
// are involved either way.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  mergeHeaders(tillRequestHeaders, cfg.AllowedHeaders),
		ExposeHeaders: tillExposedHeaders,
		MaxAge:        12 * time.Hour,
	}

	switch {
	case slices.Contains(cfg.AllowedOrigins, "*"):
		c.AllowAllOrigins = true
	case len(cfg.AllowedOrigins) > 0:
		c.AllowOrigins = cfg.AllowedOrigins
	default:
		c.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	return c
}

func mergeHeaders(base, extra []string) []string {
	out := slices.Clone(base)
	for _, h := range extra {
		if h != "" && !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
