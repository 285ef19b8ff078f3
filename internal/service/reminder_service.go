package service

import (
	"fmt"
	"time"

	"calmseek-backend/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService emails clients whose appointment starts within the
// next hour. Runs on a cron schedule; one pass per tick.
type ReminderService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	mailer          Mailer
	cron            *cron.Cron
}

func NewReminderService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	mailer Mailer,
) *ReminderService {
	return &ReminderService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		mailer:          mailer,
		cron:            cron.New(),
	}
}

// Start registers the reminder job and starts the scheduler.
func (s *ReminderService) Start() error {
	if _, err := s.cron.AddFunc("*/15 * * * *", s.SendUpcomingReminders); err != nil {
		return fmt.Errorf("failed to register reminder job: %w", err)
	}
	s.cron.Start()
	s.log.Info("Appointment reminder scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SendUpcomingReminders finds appointments starting within the next
// hour and emails each booking client. A window slightly wider than the
// tick interval keeps appointments from slipping between passes.
func (s *ReminderService) SendUpcomingReminders() {
	now := time.Now()
	from := now.Add(45 * time.Minute)
	to := now.Add(75 * time.Minute)

	appointments, err := s.appointmentRepo.FindBySlotStartWindow(s.db, from, to)
	if err != nil {
		s.log.Warnf("Failed to load appointments for reminders: %+v", err)
		return
	}

	for _, appointment := range appointments {
		subject := "Reminder: upcoming appointment"
		body := fmt.Sprintf(
			"<p>Dear %s,</p><p>This is a reminder for your %s appointment with %s from %s to %s.</p>",
			appointment.User.FullName,
			appointment.AppointmentType,
			appointment.TimeSlot.Provider.FullName,
			appointment.TimeSlot.StartTime.Format("2006-01-02 15:04"),
			appointment.TimeSlot.EndTime.Format("15:04"),
		)

		if err := s.mailer.Send(appointment.User.Email, subject, body); err != nil {
			s.log.Warnf("Failed to send reminder for appointment %d: %+v", appointment.ID, err)
			continue
		}
		s.log.Infof("Sent reminder for appointment %d to %s", appointment.ID, appointment.User.Email)
	}
}
