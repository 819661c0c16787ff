// Package dispatch hands release items to the external job host and
// translates remote job state back into persisted item fields.
package dispatch

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/cihost"
	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

// Dispatcher triggers per-item deployment jobs and polls their status.
type Dispatcher interface {
	// Trigger starts the item's job and records queue_id/job_status.
	// Failures are logged and swallowed; the item is left unchanged, so a
	// failed trigger looks the same as a slow one to callers.
	Trigger(ctx context.Context, item *entity.ReleaseItem)

	// Poll refreshes job_status/job_logs from the remote build, if it can
	// be found yet. Transient remote failures leave the item untouched and
	// are not errors; callers re-invoke later.
	Poll(ctx context.Context, item *entity.ReleaseItem) error
}

type dispatcherImpl struct {
	client cihost.Client
	store  *repository.Store
}

func NewDispatcher(i *do.Injector) (Dispatcher, error) {
	return &dispatcherImpl{
		client: do.MustInvoke[cihost.Client](i),
		store:  do.MustInvoke[*repository.Store](i),
	}, nil
}

// New builds a dispatcher over explicit collaborators. Tests use it.
func New(client cihost.Client, store *repository.Store) Dispatcher {
	return &dispatcherImpl{client: client, store: store}
}

// Trigger implements Dispatcher.
func (d *dispatcherImpl) Trigger(ctx context.Context, item *entity.ReleaseItem) {
	log := zerolog.Ctx(ctx)
	tmpl := cihost.TemplateFor(item.Platform)
	queueID, err := d.client.StartJob(ctx, tmpl, tmpl.ParamsFor(item))
	if err != nil {
		log.Error().Err(err).
			Str("service", item.Service).
			Str("platform", item.Platform).
			Msg("job trigger failed")
		return
	}

	item.QueueID = queueID
	item.JobStatus = entity.JobStatusStarted
	if err := d.store.Releases.UpdateItem(ctx, item); err != nil {
		log.Error().Err(err).Str("service", item.Service).Msg("persisting triggered job failed")
		return
	}
	log.Info().
		Str("service", item.Service).
		Str("queue_id", queueID).
		Msg("job triggered")
}

// Poll implements Dispatcher.
func (d *dispatcherImpl) Poll(ctx context.Context, item *entity.ReleaseItem) error {
	log := zerolog.Ctx(ctx)
	if item.QueueID == "" {
		return nil
	}

	tmpl := cihost.TemplateFor(item.Platform)
	builds, err := d.client.ListBuilds(ctx, tmpl)
	if err != nil {
		log.Debug().Err(err).Str("service", item.Service).Msg("build list not available yet")
		return nil
	}

	number, found := matchBuild(builds, item.QueueID)
	if !found {
		// Job still queued; the build only appears once it starts running.
		return nil
	}

	desc, err := d.client.DescribeBuild(ctx, tmpl, number)
	if err != nil {
		log.Debug().Err(err).Str("service", item.Service).Msg("build description not available yet")
		return nil
	}

	item.JobStatus = desc.Status
	item.JobLogs = summarize(desc)
	if err := d.store.Releases.UpdateItem(ctx, item); err != nil {
		return err
	}
	log.Info().
		Str("service", item.Service).
		Str("job_status", item.JobStatus).
		Msg("job status refreshed")
	return nil
}

func matchBuild(builds []cihost.Build, queueID string) (int, bool) {
	for _, b := range builds {
		if strconv.FormatInt(b.QueueID, 10) == queueID {
			return b.Number, true
		}
	}
	return 0, false
}

// summarize reduces the workflow description to the item's job_logs: the
// first failed stage's name and error when the build failed, otherwise the
// currently running (or last) stage name.
func summarize(desc *cihost.BuildDescription) string {
	if desc.Status == "FAILED" {
		for _, s := range desc.Stages {
			if s.Status == "FAILED" {
				if s.Error != "" {
					return s.Name + ": " + s.Error
				}
				return s.Name
			}
		}
		return ""
	}
	var current string
	for _, s := range desc.Stages {
		current = s.Name
		if s.Status == "IN_PROGRESS" {
			break
		}
	}
	return current
}
