package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Handler upgrades an HTTP request to a websocket connection and starts
// the client pumps. Identity comes from the auth middleware when present;
// anonymous connections get a guest identity so casual play needs no
// account.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.Error("ws upgrade failed", err, logging.Fields{"remote": c.Request.RemoteAddr})
			return
		}

		sessionID := c.Query("session_id")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		userID := c.GetString(constants.ContextUserID)
		if userID == "" {
			userID = uuid.NewString()
		}
		username := c.GetString(constants.ContextUserName)
		if username == "" {
			username = c.Query("username")
		}
		if username == "" {
			short := sessionID
			if len(short) > 8 {
				short = short[:8]
			}
			username = "convidado-" + short
		}

		client := newClient(h, conn, sessionID, userID, username)
		h.register(client)
		client.enqueue(Frame{Type: EventYou, Data: map[string]string{
			"session_id": sessionID,
			"user_id":    userID,
			"username":   username,
		}})
		go client.writePump()
		go client.readPump()
	}
}
