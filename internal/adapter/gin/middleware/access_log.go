package middleware

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog appends "IP: <ip> - Data/Hora: <timestamp>" for every request to w.
// Write failures are logged and never affect the response.
func AccessLog(w io.Writer, log *zap.Logger) gin.HandlerFunc {
	var mu sync.Mutex

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "IP não identificado"
		}
		line := fmt.Sprintf("IP: %s - Data/Hora: %s\n", ip, time.Now().UTC().Format(time.RFC3339Nano))

		mu.Lock()
		_, err := io.WriteString(w, line)
		mu.Unlock()
		if err != nil {
			log.Error("failed to write access log", zap.Error(err))
		}

		c.Next()
	}
}
