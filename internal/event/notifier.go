package event

import (
	"time"

	"perfil/internal/domain"
)

const NotificationEvent = "notification"

// BusNotifier publishes every notification on the bus so that sinks
// (websocket hub, history store, log) can fan it out independently.
type BusNotifier struct {
	bus *Bus
}

func NewBusNotifier(bus *Bus) *BusNotifier {
	return &BusNotifier{bus: bus}
}

func (n *BusNotifier) Notify(notification domain.Notification) {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	n.bus.Publish(NotificationEvent, notification)
}
