package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"assetdeck/internal/domain"
)

// AlertClient talks to the notification service: triggered price alerts for
// one email address. Alert triggering itself is backend-owned.
type AlertClient struct {
	*client
}

// NewAlertClient creates an alert-service client.
func NewAlertClient(baseURL string, timeout time.Duration, creds CredentialSource) *AlertClient {
	return &AlertClient{client: newClient(baseURL, timeout, creds, HeaderAuthorization)}
}

// History lists delivered alerts for email.
func (c *AlertClient) History(ctx context.Context, email string) ([]domain.Notification, error) {
	var out []domain.Notification
	q := url.Values{"email": {email}}
	err := c.do(ctx, http.MethodGet, "/alert/history", q, nil, &out)
	return out, err
}

// Delete removes one alert record. The backend exposes this as a GET.
func (c *AlertClient) Delete(ctx context.Context, id int64, email string) error {
	q := url.Values{"email": {email}}
	return c.do(ctx, http.MethodGet, "/alert/delete/"+strconv.FormatInt(id, 10), q, nil, nil)
}
