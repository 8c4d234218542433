package main

import (
	"net/http"

	"github.com/Leodas-Codes/ARcademia/receiver"
	"github.com/gin-gonic/gin"
	"github.com/pterm/pterm"
)

// serveStats exposes the receiver counters for dashboards and probes.
func serveStats(addr string, r *receiver.Receiver) {
	gin.SetMode(gin.ReleaseMode)

	e := gin.New()
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	e.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, r.Stats())
	})

	if err := e.Run(addr); err != nil {
		pterm.Error.Printfln("status API: %s", err.Error())
	}
}
