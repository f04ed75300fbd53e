package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
	"github.com/mukizafabrice/Unguka-sub001/internal/utils"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender. Returns nil when no SMTP host is
// configured; callers treat a nil sender as "mail disabled".
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPaymentReceipt sends a receipt for a fully settled payment.
func (s *Sender) SendPaymentReceipt(to, name string, amountPaid, amountDue int64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Payment Receipt"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your payment of %s has been received and your balance of %s is now fully settled.\n"+
			"All outstanding fees and loans covered by this payment have been marked as paid.\n"+
			"\nBest regards,\nUnguka Cooperative",
		name, utils.FormatRWF(amountPaid), utils.FormatRWF(amountDue),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendPaymentReminder sends a reminder for a partial payment that has been
// left open.
func (s *Sender) SendPaymentReminder(to, name string, amountRemaining int64, lastPaidAt time.Time) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Outstanding Payment Reminder"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your last payment on %s left a balance of %s still to pay.\n"+
			"Please settle the remaining amount at your convenience.\n"+
			"\nBest regards,\nUnguka Cooperative",
		name, lastPaidAt.Format("2006-01-02"), utils.FormatRWF(amountRemaining),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
