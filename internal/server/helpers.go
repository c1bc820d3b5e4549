package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/logger"
	"daybook/internal/storage"
)

// respondStoreErr maps storage errors onto HTTP statuses.
func respondStoreErr(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logger.Error("storage operation failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
