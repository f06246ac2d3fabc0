package event_bus

import (
	"context"

	"github.com/finboard/finboard/pkg/user"
	log "github.com/sirupsen/logrus"
)

const (
	LayoutUpdated      EventType = "dashboard.layout.updated"
	FinanceDataChanged EventType = "finance.data.changed"
)

// DashboardLayoutUpdated is published after a user's widget layout was persisted.
type DashboardLayoutUpdated struct {
	UserUid        string
	Order          []string
	Visible        []string
	PinnedAccounts []string
}

// FinanceDataChange is the payload of FinanceDataChanged, published after a
// write was forwarded to the finance API.
// Domain is the resource family ("goal", "account", ...), Action the verb.
type FinanceDataChange struct {
	UserUid  string
	Domain   string
	Action   string
	EntityId string
}

// PublishChange announces a finance API write made on behalf of the user in ctx.
// A failing subscriber does not undo the write, so errors are only logged.
// The write already happened, so a cancelled request still announces it.
func PublishChange(bus *EventBus, ctx context.Context, domain, action, entityId string) {
	if bus == nil {
		return
	}
	uid, err := user.CurrentUid(ctx)
	if err != nil {
		log.Warnf("not publishing %s.%s change: %v", domain, action, err)
		return
	}
	err = bus.Publish(NewEvent(context.WithoutCancel(ctx), FinanceDataChanged, FinanceDataChange{
		UserUid:  uid,
		Domain:   domain,
		Action:   action,
		EntityId: entityId,
	}))
	if err != nil {
		log.Errorf("failed to publish %s.%s change: %v", domain, action, err)
	}
}
