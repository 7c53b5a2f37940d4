package worker

import (
	"context"
	"fmt"
	"time"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const statsTimeout = 30 * time.Second

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// StatsStore provides the pawn figures exported by StatsJob
type StatsStore interface {
	CountPawnsByStatus(ctx context.Context) ([]models.PawnStatusCount, error)
	CountOverduePawns(ctx context.Context, asOf time.Time) (int64, error)
}

// StatsJob periodically exports pawn counts as Prometheus gauges. It only
// reads; overdue pawns are counted, never expired.
type StatsJob struct {
	store    StatsStore
	schedule string
	sched    *cron.Cron
	now      func() time.Time
	logger   *zap.Logger
}

func NewStatsJob(store StatsStore, schedule string) *StatsJob {
	return &StatsJob{
		store:    store,
		schedule: schedule,
		sched:    cron.New(cron.WithLocation(time.UTC), cron.WithParser(cronParser)),
		now:      time.Now,
		logger:   util.GetLogger(),
	}
}

// Start runs the job once, schedules it and blocks until ctx is cancelled
func (j *StatsJob) Start(ctx context.Context) error {
	if _, err := j.sched.AddFunc(j.schedule, func() { j.Run(ctx) }); err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", j.schedule, err)
	}

	j.logger.Info("Starting stats job", zap.String("schedule", j.schedule))
	j.Run(ctx)
	j.sched.Start()

	<-ctx.Done()
	<-j.sched.Stop().Done()
	j.logger.Info("Stats job stopped")
	return nil
}

// Run refreshes the gauges once
func (j *StatsJob) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("Stats job panicked", zap.Any("panic", r))
		}
	}()
	if ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()

	counts, err := j.store.CountPawnsByStatus(ctx)
	if err != nil {
		j.logger.Error("Failed to count pawns by status", zap.Error(err))
		return
	}
	util.PawnsByStatus.Reset()
	for _, c := range counts {
		util.PawnsByStatus.WithLabelValues(c.Status).Set(float64(c.Count))
	}

	overdue, err := j.store.CountOverduePawns(ctx, j.now().UTC())
	if err != nil {
		j.logger.Error("Failed to count overdue pawns", zap.Error(err))
		return
	}
	util.PawnsOverdue.Set(float64(overdue))

	j.logger.Debug("Pawn statistics refreshed",
		zap.Int("statuses", len(counts)),
		zap.Int64("overdue", overdue))
}
