// Package wsrouter routes typed JSON messages on a websocket connection to
// registered handlers.
package wsrouter

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type HandlerFunc func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error

// ErrorFunc is called with any handler error; returning an error stops the
// serve loop.
type ErrorFunc func(ctx context.Context, conn *websocket.Conn, messageType string, err error) error

type WSRouter struct {
	routes  map[string]HandlerFunc
	onError ErrorFunc
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc)}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

func (r *WSRouter) OnError(fn ErrorFunc) {
	r.onError = fn
}

// ServeConn reads messages until the connection fails, routing each to its
// handler. Unknown message types are reported back on the connection.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			conn.WriteJSON(map[string]string{"error": "unknown message type"})
			continue
		}

		msgCtx := withMessageType(ctx, msg.Type)
		if err := handler(msgCtx, conn, msg.Payload); err != nil {
			if r.onError == nil {
				continue
			}
			if err := r.onError(msgCtx, conn, msg.Type, err); err != nil {
				return err
			}
		}
	}
}
