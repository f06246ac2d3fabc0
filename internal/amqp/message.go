package amqp

import (
	"encoding/json"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
)

// Notification is the message body sent to the broker for every dashboard
// related event. Fields not relevant to the event type are omitted.
type Notification struct {
	Type       string    `json:"type"`
	UserUid    string    `json:"userUid"`
	Domain     string    `json:"domain,omitempty"`
	Action     string    `json:"action,omitempty"`
	EntityId   string    `json:"entityId,omitempty"`
	Order      []string  `json:"order,omitempty"`
	Visible    []string  `json:"visible,omitempty"`
	Pinned     []string  `json:"pinnedAccounts,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewLayoutNotification(e event_bus.DashboardLayoutUpdated, at time.Time) Notification {
	return Notification{
		Type:       string(event_bus.LayoutUpdated),
		UserUid:    e.UserUid,
		Order:      e.Order,
		Visible:    e.Visible,
		Pinned:     e.PinnedAccounts,
		OccurredAt: at,
	}
}

func NewChangeNotification(e event_bus.FinanceDataChange, at time.Time) Notification {
	return Notification{
		Type:       string(event_bus.FinanceDataChanged),
		UserUid:    e.UserUid,
		Domain:     e.Domain,
		Action:     e.Action,
		EntityId:   e.EntityId,
		OccurredAt: at,
	}
}

func (n Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
