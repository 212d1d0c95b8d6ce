package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/powerball-results/internal/draw"
	"github.com/sourcegraph/conc/pool"
)

// Channel is a named notifier
type Channel struct {
	Name     string
	Notifier Notifier
}

// Multi announces a draw on several channels concurrently
type Multi struct {
	channels []Channel
}

// NewMulti creates a fan-out notifier. Channels without a notifier are skipped.
func NewMulti(channels ...Channel) *Multi {
	m := &Multi{}
	for _, c := range channels {
		if c.Notifier != nil {
			m.channels = append(m.channels, c)
		}
	}
	return m
}

// Len returns the number of channels
func (m *Multi) Len() int {
	return len(m.channels)
}

// Names returns the channel names in registration order
func (m *Multi) Names() []string {
	names := make([]string, len(m.channels))
	for i, c := range m.channels {
		names[i] = c.Name
	}
	return names
}

// Notify runs every channel and waits for all of them. A failing channel does not
// stop the others; the returned error combines every channel failure.
func (m *Multi) Notify(ctx context.Context, snap *draw.Snapshot) error {
	if len(m.channels) == 0 {
		return nil
	}

	p := pool.New().WithErrors().WithMaxGoroutines(len(m.channels))
	for _, c := range m.channels {
		p.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: panic: %v", c.Name, r)
				}
			}()
			if err := c.Notifier.Notify(ctx, snap); err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			return nil
		})
	}
	return p.Wait()
}
