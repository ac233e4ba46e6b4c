package feed

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/quickbite/backend/models"
)

// Event types pushed over the live feed.
const (
	EventOrderUpdate    = "order_update"
	EventDeliveryUpdate = "delivery_update"
	EventPaymentUpdate  = "payment_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans order, delivery and payment updates out to connected seller
// and delivery-partner dashboards.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastDeliveryUpdate(assignment models.DeliveryAssignment) {
	broadcast(Message{Event: EventDeliveryUpdate, Data: assignment})
}

func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{Event: EventPaymentUpdate, Data: payment})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteJSON(msg); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
