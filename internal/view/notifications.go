package view

import (
	"context"
	"sync"

	"assetdeck/internal/domain"
)

// AlertService is the slice of the alert API the notification list needs.
type AlertService interface {
	History(ctx context.Context, email string) ([]domain.Notification, error)
	Delete(ctx context.Context, id int64, email string) error
}

// NotificationsController owns the triggered-alert list for one user.
// Deletion re-fetches the list rather than splicing it locally.
type NotificationsController struct {
	alerts AlertService
	email  string

	mu      sync.Mutex
	items   []domain.Notification
	lastErr error
}

// NewNotificationsController creates the controller for the given user.
func NewNotificationsController(alerts AlertService, email string) *NotificationsController {
	return &NotificationsController{alerts: alerts, email: email}
}

// Load fetches the user's notification history.
func (c *NotificationsController) Load(ctx context.Context) error {
	items, err := c.alerts.History(ctx, c.email)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.items = items
	c.lastErr = nil
	return nil
}

// Delete removes one notification and re-fetches the list.
func (c *NotificationsController) Delete(ctx context.Context, id int64) error {
	if err := c.alerts.Delete(ctx, id, c.email); err != nil {
		return err
	}
	return c.Load(ctx)
}

// Items returns a copy of the loaded notifications.
func (c *NotificationsController) Items() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Err returns the error from the last failed load.
func (c *NotificationsController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
