package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// ReservationRepository помечает завершёнными прошедшие бронирования
type ReservationRepository interface {
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CompletionJob периодически переводит подтверждённые бронирования,
// чьё время уже прошло, в статус completed.
type CompletionJob struct {
	reservationRepo ReservationRepository
	logger          Logger
	cron            *cron.Cron
	schedule        string
}

// NewCompletionJob создает фоновую задачу автозавершения бронирований.
// schedule задается стандартным cron-выражением из пяти полей.
func NewCompletionJob(reservationRepo ReservationRepository, schedule string, logger Logger) *CompletionJob {
	return &CompletionJob{
		reservationRepo: reservationRepo,
		logger:          logger,
		cron:            cron.New(),
		schedule:        schedule,
	}
}

// Start регистрирует задачу и запускает планировщик
func (j *CompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("CompletionJob: started with schedule %q", j.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего запуска
func (j *CompletionJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("CompletionJob: stopped")
}

func (j *CompletionJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	completed, err := j.reservationRepo.CompleteFinished(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("CompletionJob: failed to complete finished reservations: %v", err)
		return
	}

	if completed > 0 {
		j.logger.Info("CompletionJob: marked %d reservations as completed", completed)
	}
}
