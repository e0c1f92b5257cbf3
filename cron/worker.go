package cron

import (
	"context"
	"log"
	"time"

	"tiffinpro/config"
	reviewRepo "tiffinpro/database/repository/review"
	serviceRepo "tiffinpro/database/repository/service"

	"github.com/hibiken/asynq"
)

const TypeRatingsReconcile = "ratings:reconcile"

// RatingsWorker owns the async reconciler: the asynq server processing
// sweep tasks and the ticker goroutine enqueueing them.
type RatingsWorker struct {
	srv    *asynq.Server
	client *asynq.Client
	done   chan struct{}
}

// taskEnqueuer is the slice of asynq.Client the scheduler needs.
type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// InitRatingsWorker runs the async ratings reconciler in background. The
// sweep rebuilds every service's rating aggregate from the reviews
// collection, repairing any drift the materialized counters may have
// accumulated.
func InitRatingsWorker(services serviceRepo.ServiceRepository, reviews reviewRepo.ReviewRepository) *RatingsWorker {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	worker := &RatingsWorker{
		srv:    srv,
		client: asynq.NewClient(redisOpts),
		done:   make(chan struct{}),
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRatingsReconcile, handleRatingsSweep(services, reviews))

	interval := time.Duration(config.AppConfig.RatingsSweepMinutes) * time.Minute
	go scheduleSweeps(worker.client, interval, worker.done)

	// Start async worker with retry logic
	go func() {
		log.Println("[RatingsWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RatingsWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RatingsWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	return worker
}

// Shutdown stops the sweep scheduler and drains the asynq server.
func (w *RatingsWorker) Shutdown() {
	close(w.done)
	w.srv.Shutdown()
	if err := w.client.Close(); err != nil {
		log.Printf("[RatingsWorker] ⚠️ Failed to close task client: %v", err)
	}
}

// scheduleSweeps enqueues a reconcile task on a fixed interval until done
// is closed.
func scheduleSweeps(client taskEnqueuer, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			task := asynq.NewTask(TypeRatingsReconcile, nil)
			if _, err := client.Enqueue(task, asynq.Unique(interval)); err != nil {
				log.Printf("[RatingsWorker] ⚠️ Failed to enqueue sweep: %v", err)
			}
		}
	}
}

func handleRatingsSweep(services serviceRepo.ServiceRepository, reviews reviewRepo.ReviewRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		all, err := services.ListAll(ctx)
		if err != nil {
			log.Printf("[RatingsSweep] ❌ Failed to list services: %v", err)
			return err
		}

		var repaired int
		for _, svc := range all {
			ratings, err := reviews.Recompute(ctx, svc.ID)
			if err != nil {
				log.Printf("[RatingsSweep] ⚠️ Recompute failed for %s: %v", svc.ID, err)
				continue
			}
			if ratings != svc.Ratings {
				repaired++
			}
		}

		log.Printf("[RatingsSweep] ✅ Swept %d services, repaired %d aggregates", len(all), repaired)
		return nil
	}
}
