package outbox

import (
	"context"
	"errors"

	domoutbox "gomart/internal/domain/outbox"
)

// Fanout publishes each event to every underlying publisher; the in-process
// bus and an AMQP exchange are typically combined this way. Errors are
// joined so a broker outage does not hide a bus failure.
type Fanout struct {
	publishers []domoutbox.Publisher
}

func NewFanout(publishers ...domoutbox.Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Publish(ctx context.Context, e domoutbox.Event) error {
	var errs []error
	for _, p := range f.publishers {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
