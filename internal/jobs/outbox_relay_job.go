package jobs

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/metrics"

	"github.com/go-faster/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRelaySchedule runs the relay every second.
const DefaultRelaySchedule = "* * * * * *"

// OutboxRelayer is satisfied by commands.RelayOutboxCommandHandler.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayResult, error)
}

// OutboxRelayJob drains the outbox on a cron schedule. A pass that is
// still running when the next tick fires causes that tick to be skipped.
type OutboxRelayJob struct {
	relayer  OutboxRelayer
	schedule string
	cmd      commands.RelayOutboxCommand
	cron     *cron.Cron
	metrics  *metrics.Collector
	logger   *zap.Logger
}

func NewOutboxRelayJob(
	relayer OutboxRelayer,
	schedule string,
	batchSize int,
	collector *metrics.Collector,
	logger *zap.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}

	logger = logger.With(zap.String("component", "outbox_relay_job"))

	return &OutboxRelayJob{
		relayer:  relayer,
		schedule: schedule,
		cmd:      cmd,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
		),
		metrics: collector,
		logger:  logger,
	}, nil
}

func (j *OutboxRelayJob) Name() string { return "outbox_relay" }

// Start schedules the relay. It fails on an invalid cron expression.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return errors.Wrapf(err, "schedule %q", j.schedule)
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

// RunOnce performs one relay pass and records its outcome.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	start := time.Now()
	result, err := j.relayer.Handle(ctx, j.cmd)
	j.metrics.RelayDuration.Observe(time.Since(start).Seconds())

	j.metrics.RelayMessages.WithLabelValues("published").Add(float64(result.Published))
	j.metrics.RelayMessages.WithLabelValues("failed").Add(float64(result.Failed))
	j.metrics.RelayMessages.WithLabelValues("deferred").Add(float64(result.Deferred))

	if err != nil {
		j.metrics.RelayBatches.WithLabelValues(metrics.OutcomeFailure).Inc()
		j.logger.Error("Outbox relay failed", zap.Error(err))
		return
	}
	j.metrics.RelayBatches.WithLabelValues(metrics.OutcomeSuccess).Inc()

	if result.Published+result.Failed+result.Deferred > 0 {
		j.logger.Debug("Outbox relay pass",
			zap.Int("published", result.Published),
			zap.Int("failed", result.Failed),
			zap.Int("deferred", result.Deferred),
		)
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
