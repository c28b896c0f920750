package resilience

import (
	"time"
)

// FromAttempts builds a RetryConfig from a configured retry count. retries is
// the number of extra attempts after the first; negative values fall back to
// the default.
func FromAttempts(retries int, initialBackoff time.Duration) RetryConfig {
	cfg := DefaultRetryConfig()
	if retries >= 0 {
		cfg.MaxAttempts = retries + 1
	}
	if initialBackoff > 0 {
		cfg.InitialBackoff = initialBackoff
	}
	return cfg
}
