package notifier

import (
	"context"

	"github.com/pfrederiksen/powerball-results/internal/draw"
)

// Notifier defines the interface for announcing a newly recorded draw
type Notifier interface {
	// Notify announces the draw held by snap
	Notify(ctx context.Context, snap *draw.Snapshot) error
}

// Func adapts a plain function to the Notifier interface
type Func func(ctx context.Context, snap *draw.Snapshot) error

// Notify calls f
func (f Func) Notify(ctx context.Context, snap *draw.Snapshot) error {
	return f(ctx, snap)
}
