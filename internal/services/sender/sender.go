// Package services содержит отправку почтовых уведомлений платформы:
// подтверждения оплаты, напоминания о консультациях и ответы поддержки.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/lib/smtp"
	"github.com/matricare/matricare-backend/internal/models"
)

// Transport устанавливает SMTP-соединение для отправки письма.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// SenderService превращает события очередей в письма пользователям.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendPaymentConfirmation отправляет письмо об успешной оплате подписки.
func (s *SenderService) SendPaymentConfirmation(body []byte) error {
	var message models.PaymentNotice
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal payment notice", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Оплата подписки подтверждена"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nОплата тарифа %s на сумму %.2f %s прошла успешно.\n\nПремиум-доступ уже открыт.",
		message.Username, message.Plan, float64(message.Amount)/100, message.Currency)

	return s.sendEmail(to, subject, bodyText)
}

// SendAppointmentReminder отправляет напоминание о завтрашней консультации.
func (s *SenderService) SendAppointmentReminder(body []byte) error {
	var message models.AppointmentReminder
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal appointment reminder", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Напоминание о консультации"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nЗавтра в %s у вас консультация с экспертом %s.\n\nПожалуйста, будьте на связи в назначенное время.",
		message.Username, message.ScheduledAt.Format("15:04"), message.ExpertUsername)

	return s.sendEmail(to, subject, bodyText)
}

// SendSupportReplyNotice отправляет уведомление об ответе поддержки.
func (s *SenderService) SendSupportReplyNotice(body []byte) error {
	var message models.SupportNotice
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal support notice", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Поддержка ответила на ваше обращение"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nНа ваше обращение «%s» поступил ответ.\n\nПолный текст ответа доступен в приложении.",
		message.Username, message.Subject)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
