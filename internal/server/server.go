package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivekx11/tankgame/internal/game"
	"github.com/vivekx11/tankgame/internal/sim"
)

func SetupRouter(hub *Hub, loop *sim.Loop, world *game.World) *gin.Engine {
	r := gin.Default()
	r.Static("/static", "./static")

	r.GET("/healthz", healthHandler)
	r.GET("/stats", statsHandler(hub, world))

	r.GET("/ws", HandleWebsocket(hub, loop))

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func statsHandler(hub *Hub, world *game.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"sessions":    hub.NumSessions(),
			"tanks":       world.NumTanks(),
			"projectiles": world.NumProjectiles(),
			"timestamp":   time.Now().UnixMilli(),
		})
	}
}
