package veil

import (
	"context"
	"errors"
	"fmt"
)

// authed runs op under the session policy.
//
// If no session is held yet, one handshake runs before the first attempt.
// On an API error matching the expired-session message, the handshake runs
// once more and op is retried from the start; a second expiry failure
// surfaces ErrSessionRetryExhausted so the loop always terminates. Every
// other failure propagates unchanged.
func (c *Client) authed(ctx context.Context, op func() error) error {
	if c.signer == nil {
		return ErrNoCredentials
	}
	if c.sessions.Token() == "" {
		if err := c.Authenticate(ctx); err != nil {
			return err
		}
	}

	err := op()
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.SessionExpired() {
		return err
	}

	c.logger.Debug("session expired, re-authenticating")
	if err := c.Authenticate(ctx); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}

	err = op()
	if err != nil && errors.As(err, &apiErr) && apiErr.SessionExpired() {
		return fmt.Errorf("%w: %v", ErrSessionRetryExhausted, err)
	}
	return err
}
