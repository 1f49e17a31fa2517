package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports connectivity to MySQL and Redis. The payload carries
// booleans only, never addresses or credentials.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		mysqlOK := false
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			mysqlOK = true
		}
		redisOK := rdb.Ping(ctx).Err() == nil

		estado := "ok"
		status := http.StatusOK
		if !mysqlOK || !redisOK {
			estado = "degradado"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status": estado,
			"mysql":  mysqlOK,
			"redis":  redisOK,
		})
	}
}
