package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports API liveness plus Postgres and Redis reachability.
// Responds 503 when any dependency is down; never exposes internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		deps := gin.H{
			"postgres": checkResult(pingPostgres(ctx, db)),
			"redis":    checkResult(rdb.Ping(ctx).Err()),
		}

		status, overall := http.StatusOK, "ok"
		for _, v := range deps {
			if v != "up" {
				status, overall = http.StatusServiceUnavailable, "degraded"
			}
		}

		c.JSON(status, gin.H{
			"status": overall,
			"deps":   deps,
		})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func checkResult(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}
