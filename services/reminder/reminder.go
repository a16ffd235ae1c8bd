// Package reminder schedules appointment reminders on the asynq queue.
package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"glowbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeReminderSend is the asynq task type for a booking reminder.
const TypeReminderSend = "reminder:send"

// LeadTime is how long before the appointment the reminder fires.
const LeadTime = time.Hour

const queueName = "default"

func taskID(bookingCode string) string {
	return "reminder:" + bookingCode
}

// AsynqScheduler implements booking.ReminderScheduler on asynq.
type AsynqScheduler struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	Location  *time.Location
	Logger    *zap.Logger
}

// NewAsynqScheduler constructs the scheduler from a redis connection option.
func NewAsynqScheduler(opt asynq.RedisClientOpt, logger *zap.Logger) *AsynqScheduler {
	return &AsynqScheduler{
		Client:    asynq.NewClient(opt),
		Inspector: asynq.NewInspector(opt),
		Location:  time.Local,
		Logger:    logger,
	}
}

// Schedule enqueues a reminder task that fires LeadTime before the
// appointment. Appointments already inside the lead time get no reminder.
func (s *AsynqScheduler) Schedule(b models.Booking) error {
	scheduledAt, err := b.ScheduledAt(s.Location)
	if err != nil {
		return fmt.Errorf("cannot schedule reminder for %s: %w", b.BookingCode, err)
	}
	fireAt := scheduledAt.Add(-LeadTime)
	if fireAt.Before(time.Now()) {
		s.Logger.Debug("skipping reminder inside lead time", zap.String("bookingCode", b.BookingCode))
		return nil
	}

	payload := models.ReminderPayload{
		BookingCode: b.BookingCode,
		UserID:      b.UserID,
		FireDate:    fireAt.Format(time.RFC3339),
		Title:       "Upcoming appointment",
		Body:        fmt.Sprintf("Your appointment on %s at %s is coming up.", b.Date, b.Time),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, data)
	_, err = s.Client.Enqueue(task,
		asynq.ProcessAt(fireAt),
		asynq.TaskID(taskID(b.BookingCode)),
		asynq.Queue(queueName),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder for %s: %w", b.BookingCode, err)
	}
	return nil
}

// Cancel removes a scheduled reminder; a missing task is a no-op.
func (s *AsynqScheduler) Cancel(bookingCode string) error {
	err := s.Inspector.DeleteTask(queueName, taskID(bookingCode))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		return fmt.Errorf("failed to cancel reminder for %s: %w", bookingCode, err)
	}
	return nil
}
