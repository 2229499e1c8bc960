// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"travelapp-backend/models"
	"travelapp-backend/repository"
	"travelapp-backend/utils"
)

// MessageSender delivers one text message and returns the provider's id.
type MessageSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSid, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

// ReminderService texts the owners of active, confirmed reservations the day
// before a linked tour starts. Each link is reminded once per tour date.
type ReminderService struct {
	tours  *repository.TourRepository
	links  *repository.TourReservationRepository
	logs   *repository.ReminderLogRepository
	sender MessageSender
	logger *slog.Logger
	clock  clock
}

func NewReminderService(tours *repository.TourRepository, links *repository.TourReservationRepository, logs *repository.ReminderLogRepository, sender MessageSender, logger *slog.Logger) *ReminderService {
	return &ReminderService{
		tours:  tours,
		links:  links,
		logs:   logs,
		sender: sender,
		logger: resolveLogger(logger).With("module", "reminder", "layer", "service"),
	}
}

// ReminderSummary counts the outcome of one reminder run.
type ReminderSummary struct {
	Sent    int
	Failed  int
	Skipped int
}

// SendTourReminders processes every active tour starting tomorrow.
func (s *ReminderService) SendTourReminders(ctx context.Context) (ReminderSummary, error) {
	var summary ReminderSummary
	tomorrow := models.NewDate(utils.DayAfter(s.clock.now()))
	s.logger.Info("starting tour reminder processing", "event", "reminder.start", "tour_date", tomorrow.String())

	tours, err := s.tours.StartingOn(ctx, tomorrow)
	if err != nil {
		return summary, err
	}
	for i := range tours {
		if err := s.remindTour(ctx, &tours[i], &summary); err != nil {
			s.logger.Error("tour reminders failed", "event", "reminder.tour_failed", "tour_id", tours[i].ID, "error", err)
		}
	}

	s.logger.Info("tour reminder processing completed", "event", "reminder.done",
		"sent", summary.Sent, "failed", summary.Failed, "skipped", summary.Skipped)
	return summary, nil
}

func (s *ReminderService) remindTour(ctx context.Context, tour *models.Tour, summary *ReminderSummary) error {
	links, err := s.links.RemindableForTour(ctx, tour.ID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if link.Reservation == nil || link.Reservation.User == nil || link.Reservation.User.Phone == "" {
			summary.Skipped++
			continue
		}
		sent, err := s.logs.WasSent(ctx, link.ID, tour.DateStart)
		if err != nil {
			return err
		}
		if sent {
			summary.Skipped++
			continue
		}

		user := link.Reservation.User
		message := reminderMessage(user, tour, link.ReservationID)
		entry := &models.ReminderLog{
			TourReservationID: link.ID,
			TourDate:          tour.DateStart,
			UserID:            user.ID,
			TourID:            tour.ID,
			Message:           message,
			Status:            models.ReminderStatusSent,
			Channel:           "sms",
			SentAt:            s.clock.now().UTC(),
		}

		sid, err := s.sender.Send(ctx, user.Phone, message)
		if err != nil {
			s.logger.Warn("failed to send reminder", "event", "reminder.send_failed", "user_id", user.ID, "tour_reservation_id", link.ID, "error", err)
			entry.Status = models.ReminderStatusFailed
			entry.ErrorMessage = err.Error()
			summary.Failed++
		} else {
			s.logger.Info("reminder sent", "event", "reminder.sent", "user_id", user.ID, "tour_reservation_id", link.ID, "sid", sid)
			summary.Sent++
		}

		if err := s.logs.Create(ctx, entry); err != nil {
			s.logger.Error("failed to log reminder", "event", "reminder.log_failed", "tour_reservation_id", link.ID, "error", err)
		}
	}
	return nil
}

func reminderMessage(user *models.User, tour *models.Tour, reservationID uint) string {
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	return fmt.Sprintf("Hi %s, your tour to %s, %s starts on %s (reservation #%d). Have a great trip!",
		name, tour.City, tour.Country, tour.DateStart, reservationID)
}
