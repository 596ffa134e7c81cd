package ws

import "kds_manager/model"

type MessageType string

const (
	MsgInitOrders   MessageType = "init-orders"
	MsgNewTicket    MessageType = "new-ticket"
	MsgStatusUpdate MessageType = "status-update"
	MsgPickedUp     MessageType = "picked-up"
)

// Message is the envelope pushed to station clients.
type Message struct {
	Type MessageType `json:"type"`
	Data Payload     `json:"data"`
}

// Payload is the tagged union of message bodies. init-orders carries a
// list; the other three carry a single order under the "order" key.
type Payload interface {
	payload()
}

type InitOrdersData struct {
	Orders []model.OrderWithItems `json:"orders"`
}

type OrderData struct {
	Order model.OrderWithItems `json:"order"`
}

func (InitOrdersData) payload() {}
func (OrderData) payload()      {}

func NewTicket(order model.OrderWithItems) Message {
	return Message{Type: MsgNewTicket, Data: OrderData{Order: order}}
}

func StatusUpdate(order model.OrderWithItems) Message {
	return Message{Type: MsgStatusUpdate, Data: OrderData{Order: order}}
}

func PickedUp(order model.OrderWithItems) Message {
	return Message{Type: MsgPickedUp, Data: OrderData{Order: order}}
}

func InitOrders(orders []model.OrderWithItems) Message {
	return Message{Type: MsgInitOrders, Data: InitOrdersData{Orders: orders}}
}

// ClientMessage is an inbound frame from a station client. Stations only
// consume; anything they send is parsed for well-formedness and dropped.
type ClientMessage struct {
	Type string `json:"type"`
}
