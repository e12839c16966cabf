// Package service implements the identity, content and profile operations on
// top of the repositories.
package service

import (
	"context"
	"errors"
	"time"

	"netgro/internal/notifications"
	"netgro/internal/observability"

	"github.com/google/uuid"
)

// Id prefixes of the persisted records.
const (
	userIDPrefix    = "u_"
	postIDPrefix    = "p_"
	commentIDPrefix = "c_"
)

var structuredLogger = observability.NewStructuredLogger()

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// publish notifies subscribers after a successful mutation. The change is
// already persisted, so a delivery failure is only logged.
func publish(ctx context.Context, n *notifications.Notifier, service string, ev notifications.Event) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, ev); err != nil {
		structuredLogger.LogServiceError(ctx, service, "publish", err)
	}
}

// errNothingToRemove aborts a repository update without writing.
var errNothingToRemove = errors.New("index out of range")
