package eventbus

// Typed Publish/Subscribe pairs, one per event.

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}

func (bus *EventBus) PublishRowAdded(p RowAddedPayload) {
	bus.send(EventRowAdded, p)
}

func (bus *EventBus) SubscribeRowAdded(fn func(RowAddedPayload)) {
	bus.subscribe(EventRowAdded, func(p any) { fn(p.(RowAddedPayload)) })
}

func (bus *EventBus) PublishRowCancelled(p RowCancelledPayload) {
	bus.send(EventRowCancelled, p)
}

func (bus *EventBus) SubscribeRowCancelled(fn func(RowCancelledPayload)) {
	bus.subscribe(EventRowCancelled, func(p any) { fn(p.(RowCancelledPayload)) })
}

func (bus *EventBus) PublishRowCommitted(p RowCommittedPayload) {
	bus.send(EventRowCommitted, p)
}

func (bus *EventBus) SubscribeRowCommitted(fn func(RowCommittedPayload)) {
	bus.subscribe(EventRowCommitted, func(p any) { fn(p.(RowCommittedPayload)) })
}

func (bus *EventBus) PublishRowDeleted(p RowDeletedPayload) {
	bus.send(EventRowDeleted, p)
}

func (bus *EventBus) SubscribeRowDeleted(fn func(RowDeletedPayload)) {
	bus.subscribe(EventRowDeleted, func(p any) { fn(p.(RowDeletedPayload)) })
}

func (bus *EventBus) PublishRowFailed(p RowFailedPayload) {
	bus.send(EventRowFailed, p)
}

func (bus *EventBus) SubscribeRowFailed(fn func(RowFailedPayload)) {
	bus.subscribe(EventRowFailed, func(p any) { fn(p.(RowFailedPayload)) })
}

func (bus *EventBus) PublishRowsReloaded(p RowsReloadedPayload) {
	bus.send(EventRowsReloaded, p)
}

func (bus *EventBus) SubscribeRowsReloaded(fn func(RowsReloadedPayload)) {
	bus.subscribe(EventRowsReloaded, func(p any) { fn(p.(RowsReloadedPayload)) })
}
