package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/cadence/internal/domain/platform"
	"github.com/rpggio/cadence/internal/domain/schedule"
)

// ErrPlatformDisconnected indicates a target platform is no longer connected.
var ErrPlatformDisconnected = errors.New("platform disconnected")

// PlatformLookup fetches a user's platform.
type PlatformLookup interface {
	Get(ctx context.Context, userID, id string) (*platform.Platform, error)
}

// PlatformDispatcher checks that every target platform exists and is
// connected. Delivery to the networks themselves is external.
type PlatformDispatcher struct {
	platforms PlatformLookup
}

// NewPlatformDispatcher creates the default dispatcher.
func NewPlatformDispatcher(platforms PlatformLookup) *PlatformDispatcher {
	return &PlatformDispatcher{platforms: platforms}
}

// Dispatch implements Dispatcher.
func (d *PlatformDispatcher) Dispatch(ctx context.Context, sched schedule.Schedule) error {
	if len(sched.PlatformIDs) == 0 {
		return schedule.ErrNoPlatforms
	}
	for _, id := range sched.PlatformIDs {
		p, err := d.platforms.Get(ctx, sched.UserID, id)
		if err != nil {
			return fmt.Errorf("platform %s: %w", id, err)
		}
		if !p.Connected {
			return fmt.Errorf("%s: %w", p.Name, ErrPlatformDisconnected)
		}
	}
	return nil
}
