package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vivekx11/tankgame/internal/protocol"
	"github.com/vivekx11/tankgame/internal/sim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Inbound client frames are flat objects switched on the action field.

type MoveAction struct {
	Action string  `json:"action"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Boost  bool    `json:"boost"`
}

// HandleWebsocket upgrades the connection, registers a session and its tank,
// and pumps inbound intents into the loop until the client goes away.
func HandleWebsocket(hub *Hub, loop *sim.Loop) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error("websocket upgrade failed", "err", err)
			return
		}

		name := c.Query("name")
		id := hub.Register(conn)
		init := loop.Connect(id, name)
		hub.Send(id, init)
		log.Info("session connected", "session", id, "name", name)

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				loop.Disconnect(id)
				hub.Unregister(id)
				log.Info("session disconnected", "session", id)
				break
			}
			if msgType != websocket.TextMessage {
				continue
			}

			var base struct {
				Action string `json:"action"`
			}
			if err := json.Unmarshal(msg, &base); err != nil {
				log.Debug("bad frame", "session", id, "err", err)
				continue
			}

			switch base.Action {
			case protocol.ActionMove:
				var move MoveAction
				if err := json.Unmarshal(msg, &move); err != nil {
					continue
				}
				loop.Move(id, move.DX, move.DY, move.Boost)

			case protocol.ActionShoot:
				loop.Shoot(id)

			case protocol.ActionRepair:
				loop.Repair(id)
			}
		}
	}
}
