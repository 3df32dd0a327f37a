package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether Postgres and Redis answer within 3s. The body names
// each dependency ("conectado"/"erro") without exposing credentials or DSNs;
// any failing dependency turns the whole check into a 503.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		deps := gin.H{
			"postgres": "conectado",
			"redis":    "conectado",
		}
		healthy := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			deps["postgres"] = "erro"
			healthy = false
		}
		if rdb.Ping(ctx).Err() != nil {
			deps["redis"] = "erro"
			healthy = false
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":           healthy,
			"dependencias": deps,
		})
	}
}
