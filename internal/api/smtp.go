package api

import (
	"context"
	"net/url"
)

// GetSMTPConfig fetches the mail configuration. The server blanks the
// password; callers must never echo a password back into an edit form.
func (c *Client) GetSMTPConfig(ctx context.Context) (SMTPConfig, error) {
	var out SMTPConfig
	if err := c.Get(ctx, "/config/smtp", nil, &out); err != nil {
		return SMTPConfig{}, err
	}
	out.SMTPPassword = ""
	return out, nil
}

// UpdateSMTPConfig saves the mail configuration. An empty password means
// "keep the stored one".
func (c *Client) UpdateSMTPConfig(ctx context.Context, cfg SMTPConfig) error {
	return c.Put(ctx, "/config/smtp", nil, cfg, nil)
}

// TestSMTP asks the server to send a test email to the given address.
func (c *Client) TestSMTP(ctx context.Context, testEmail string) error {
	q := url.Values{}
	q.Set("test_email", testEmail)
	return c.Post(ctx, "/config/smtp/test", q, nil, nil)
}
