package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes and returns a new Socket.IO server used for
// live adoption-inquiry chat. Rooms are keyed by conversation ID.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Handle join events
	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		if conversationID == "" {
			log.Println("❌ Invalid conversationId in join request")
			return
		}
		log.Printf("👥 User %s joined conversation %s\n", c.ID(), conversationID)
		c.Join(conversationID)
	})

	// Handle sendMessage events
	server.OnEvent("/", "sendMessage", func(c socketio.Conn, message map[string]interface{}) {
		conversationID, _ := message["conversationId"].(string)
		if conversationID == "" {
			log.Println("❌ Invalid conversationId in sendMessage")
			return
		}
		server.BroadcastToRoom("/", conversationID, "newMessage", message)
	})

	// Handle disconnection
	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}
