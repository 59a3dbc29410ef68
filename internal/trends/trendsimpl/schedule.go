package trendsimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Schedule re-runs Refresh on the cron expression from TRENDS_REFRESH_CRON.
// A no-op when the expression is empty; the start-up refresh is the only
// trigger then.
func (a *AggregatorImpl) Schedule(ctx context.Context) error {
	expr := a.Config.Feed.TrendsCron
	if expr == "" {
		a.Logger.Info("No trends refresh schedule configured")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create trends scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				a.Logger.Info("Context cancelled, skipping scheduled trends refresh")
				return
			}

			refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			if err := a.Refresh(refreshCtx); err != nil {
				a.Logger.Error("Scheduled trends refresh failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule trends refresh: %w", err)
	}

	scheduler.Start()
	a.Logger.Info("Scheduled trends refresh", "cron", expr)

	go func() {
		<-ctx.Done()
		a.Logger.Info("Stopping trends refresh scheduler")
		if err := scheduler.Shutdown(); err != nil {
			a.Logger.Error("Failed to shut down trends scheduler", "error", err)
		}
	}()

	return nil
}
