package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/rsharma/fintrack/internal/config"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendEMIReminder sends a reminder that an EMI installment is due
func (s *Sender) SendEMIReminder(to, username, emiName string, dueDate time.Time, amount float64, monthsLeft int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("EMI Reminder: %s due on %s", emiName, dueDate.Format("2006-01-02"))

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a reminder that your EMI installment for %s of %.2f is due on %s.\n"+
			"After this payment, %d installments will remain.\n"+
			"\nBest regards,\nFintrack",
		username, emiName, amount, dueDate.Format("2006-01-02"), monthsLeft-1,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
