// Package scheduler runs the daily EMI reminder job.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/projector"
	"github.com/sirupsen/logrus"
)

// Store is the slice of persistence the reminder job needs.
type Store interface {
	ListUserEmails() ([]models.User, error)
	ListEMIs(userID int64) ([]models.EMI, error)
}

// ReminderSender delivers EMI reminders. Implemented by the email sender.
type ReminderSender interface {
	SendEMIReminder(to, username, emiName string, dueDate time.Time, amount float64, monthsLeft int) error
}

// Scheduler triggers reminder emails for EMIs due the next day.
type Scheduler struct {
	store  Store
	sender ReminderSender
	log    *logrus.Logger
	cron   *cron.Cron
	spec   string
	now    func() time.Time
}

// New creates a Scheduler with the given cron spec. A nil clock means
// time.Now.
func New(store Store, sender ReminderSender, log *logrus.Logger, spec string, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		store:  store,
		sender: sender,
		log:    log,
		cron:   cron.New(),
		spec:   spec,
		now:    now,
	}
}

// Start registers the reminder job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunReminders); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Reminder scheduler started with spec %q", s.spec)
	return nil
}

// Stop halts the cron loop. Running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunReminders emails every user whose EMIs fall due tomorrow.
func (s *Scheduler) RunReminders() {
	tomorrow := s.now().AddDate(0, 0, 1)

	users, err := s.store.ListUserEmails()
	if err != nil {
		s.log.Errorf("Reminder run failed to list users: %v", err)
		return
	}
	for _, user := range users {
		emis, err := s.store.ListEMIs(user.ID)
		if err != nil {
			s.log.Errorf("Reminder run failed to list EMIs for user %d: %v", user.ID, err)
			continue
		}
		for _, emi := range DueOn(emis, tomorrow) {
			left := projector.RemainingMonths(emi, tomorrow)
			if err := s.sender.SendEMIReminder(user.Email, user.Name, emi.Name, tomorrow, emi.Amount, left); err != nil {
				s.log.Errorf("Failed to remind user %d about EMI %d: %v", user.ID, emi.ID, err)
			}
		}
	}
}

// DueOn returns the EMIs with an installment falling on the given date.
// Activity is judged as of that date, so no reminder fires for an EMI whose
// term ends before a due date in the next month. Due days past the end of a
// short month land on its last day.
func DueOn(emis []models.EMI, date time.Time) []models.EMI {
	lastDay := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	var due []models.EMI
	for _, emi := range emis {
		if projector.RemainingMonths(emi, date) == 0 {
			continue
		}
		start, err := projector.ParseDate(emi.StartDate)
		if err != nil {
			continue
		}
		if start.Year() > date.Year() || (start.Year() == date.Year() && start.Month() > date.Month()) {
			continue
		}
		day := emi.DueDay
		if day > lastDay {
			day = lastDay
		}
		if day == date.Day() {
			due = append(due, emi)
		}
	}
	return due
}
