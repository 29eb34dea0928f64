package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/louisbranch/socialadmin/internal/platform/timeouts"
)

// CheckReachable checks that the API host answers HTTP at all, retrying with
// exponential backoff until timeouts.APIReachable elapses. Any HTTP status counts
// as reachable; only transport failures are retried.
func (c *Client) CheckReachable(ctx context.Context) error {
	attempt := 0
	operation := func() (int, error) {
		attempt++
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, c.endpoint("/"), nil)
		if err != nil {
			return 0, backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, err
		}
		resp.Body.Close()
		return resp.StatusCode, nil
	}

	status, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(timeouts.APIReachable),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Printf("api reachability: attempt %d failed: %v (retry in %s)", attempt, err, next.Round(time.Millisecond))
		}),
	)
	if err != nil {
		return err
	}
	log.Printf("api reachability: %s reachable (status %d)", c.BaseURL(), status)
	return nil
}
