// Package notify is the outbound notification port. Delivery (email, chat)
// lives outside this service; the default sink only logs.
package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
)

// Notifier is told about release lifecycle events worth announcing.
type Notifier interface {
	ReleaseCreated(ctx context.Context, rel *entity.Release) error
	ReleaseDeployed(ctx context.Context, rel *entity.Release) error
}

type logNotifierImpl struct{}

func NewLogNotifier(i *do.Injector) (Notifier, error) {
	return &logNotifierImpl{}, nil
}

// ReleaseCreated implements Notifier.
func (n *logNotifierImpl) ReleaseCreated(ctx context.Context, rel *entity.Release) error {
	zerolog.Ctx(ctx).Info().
		Str("uuid", rel.UUID.String()).
		Str("name", rel.Name).
		Int("items", len(rel.Items)).
		Int("approvers", len(rel.Approvers)).
		Msg("release created")
	return nil
}

// ReleaseDeployed implements Notifier.
func (n *logNotifierImpl) ReleaseDeployed(ctx context.Context, rel *entity.Release) error {
	zerolog.Ctx(ctx).Info().
		Str("uuid", rel.UUID.String()).
		Str("name", rel.Name).
		Str("deployed_by", rel.DeployedBy).
		Msg("release deployment started")
	return nil
}
