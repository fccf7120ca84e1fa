package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"social-service/internal/events"
)

var jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scheduler_jobs_processed_total",
	Help: "Deferred jobs processed, by kind and outcome.",
}, []string{"kind", "outcome"})

// Publisher applies the publish flip. It must tolerate a post that was
// deleted after scheduling.
type Publisher interface {
	MarkVisible(postID uint64) (bool, error)
}

// Worker polls for due jobs. Jobs never fire early; they may fire late by up
// to one poll interval.
type Worker struct {
	jobs     Store
	posts    Publisher
	events   events.Writer
	interval time.Duration
	batch    int
}

func NewWorker(jobs Store, posts Publisher, ev events.Writer, interval time.Duration) *Worker {
	return &Worker{jobs: jobs, posts: posts, events: ev, interval: interval, batch: 100}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Tick(ctx, time.Now()); err != nil {
				log.Printf("scheduler: tick: %v", err)
			}
		}
	}
}

func (w *Worker) Tick(ctx context.Context, now time.Time) error {
	due, err := w.jobs.Due(now, w.batch)
	if err != nil {
		return err
	}
	for _, j := range due {
		outcome := "published"
		switch j.Kind {
		case KindPublishPost:
			flipped, err := w.posts.MarkVisible(j.PostID)
			if err != nil {
				jobsProcessed.WithLabelValues(j.Kind, "error").Inc()
				log.Printf("scheduler: publish post %d: %v", j.PostID, err)
				continue
			}
			if !flipped {
				// Post is gone; nothing to publish.
				outcome = "missing"
			} else {
				w.events.Publish(ctx, events.PostPublished, map[string]uint64{"post_id": j.PostID})
			}
		default:
			outcome = "unknown_kind"
		}
		if err := w.jobs.MarkDone(j.ID); err != nil {
			jobsProcessed.WithLabelValues(j.Kind, "error").Inc()
			log.Printf("scheduler: mark done %d: %v", j.ID, err)
			continue
		}
		jobsProcessed.WithLabelValues(j.Kind, outcome).Inc()
	}
	return nil
}
