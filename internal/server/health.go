package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthHandler reports database, cache and storage status. Only the
// database is required; the others degrade to "disabled" or "down".
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	response := gin.H{"status": "healthy"}

	if s.deps.DB != nil {
		dbHealth := s.deps.DB.Health()
		response["database"] = dbHealth
		if dbHealth["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
	} else {
		response["database"] = map[string]string{"status": "disabled"}
	}

	response["cache"] = componentHealth(func() error {
		if s.deps.Cache == nil {
			return errDisabled
		}
		return s.deps.Cache.Ping(ctx)
	})

	response["storage"] = componentHealth(func() error {
		if s.deps.Storage == nil {
			return errDisabled
		}
		return s.deps.Storage.Health(ctx)
	})

	if status != http.StatusOK {
		response["status"] = "unhealthy"
	}
	c.JSON(status, response)
}

var errDisabled = errors.New("disabled")

func componentHealth(check func() error) map[string]string {
	err := check()
	switch {
	case err == nil:
		return map[string]string{"status": "up"}
	case errors.Is(err, errDisabled):
		return map[string]string{"status": "disabled"}
	default:
		return map[string]string{"status": "down", "error": err.Error()}
	}
}
