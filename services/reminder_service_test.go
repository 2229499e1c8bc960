package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"travelapp-backend/models"
	"travelapp-backend/repository"
	"travelapp-backend/repository/repositorytest"
)

type recordedMessage struct {
	to   string
	body string
}

type fakeSender struct {
	sent []recordedMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, recordedMessage{to: to, body: body})
	return "SM123", nil
}

func newReminderService(t *testing.T, env *testEnv, sender MessageSender, now time.Time) *ReminderService {
	t.Helper()
	svc := NewReminderService(
		repository.NewTourRepository(env.db),
		repository.NewTourReservationRepository(env.db),
		repository.NewReminderLogRepository(env.db),
		sender,
		nil,
	)
	svc.clock = func() time.Time { return now }
	return svc
}

func TestSendTourRemindersOncePerLink(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	owner := repositorytest.SeedUser(t, env.db, "john", false)
	env.db.Model(owner).Update("phone", "+48600100200")
	reservation := repositorytest.SeedReservation(t, env.db, owner)
	tomorrow := repositorytest.SeedTour(t, env.db, owner, "Zakopane", now.AddDate(0, 0, 1))
	later := repositorytest.SeedTour(t, env.db, owner, "Krakow", now.AddDate(0, 0, 5))
	repositorytest.SeedLink(t, env.db, reservation, tomorrow)
	repositorytest.SeedLink(t, env.db, reservation, later)

	sender := &fakeSender{}
	svc := newReminderService(t, env, sender, now)

	summary, err := svc.SendTourReminders(ctx)
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if summary.Sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("expected exactly one reminder, got %+v / %d", summary, len(sender.sent))
	}
	if sender.sent[0].to != "+48600100200" || !strings.Contains(sender.sent[0].body, "Zakopane") {
		t.Fatalf("unexpected message %+v", sender.sent[0])
	}

	summary, err = svc.SendTourReminders(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Sent != 0 || summary.Skipped != 1 || len(sender.sent) != 1 {
		t.Fatalf("expected the second run to skip, got %+v", summary)
	}
}

func TestSendTourRemindersRetriesFailures(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	owner := repositorytest.SeedUser(t, env.db, "john", false)
	env.db.Model(owner).Update("phone", "+48600100200")
	reservation := repositorytest.SeedReservation(t, env.db, owner)
	tour := repositorytest.SeedTour(t, env.db, owner, "Zakopane", now.AddDate(0, 0, 1))
	repositorytest.SeedLink(t, env.db, reservation, tour)

	sender := &fakeSender{err: errors.New("twilio unavailable")}
	svc := newReminderService(t, env, sender, now)

	summary, err := svc.SendTourReminders(ctx)
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("expected one failure, got %+v", summary)
	}
	var failed models.ReminderLog
	if err := env.db.First(&failed).Error; err != nil {
		t.Fatalf("expected a reminder log entry: %v", err)
	}
	if failed.Status != models.ReminderStatusFailed || failed.ErrorMessage != "twilio unavailable" {
		t.Fatalf("unexpected log entry %+v", failed)
	}

	sender.err = nil
	summary, err = svc.SendTourReminders(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if summary.Sent != 1 {
		t.Fatalf("expected the retry to send, got %+v", summary)
	}
}

func TestSendTourRemindersSkipsUsersWithoutPhone(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	owner := repositorytest.SeedUser(t, env.db, "john", false)
	reservation := repositorytest.SeedReservation(t, env.db, owner)
	tour := repositorytest.SeedTour(t, env.db, owner, "Zakopane", now.AddDate(0, 0, 1))
	repositorytest.SeedLink(t, env.db, reservation, tour)

	sender := &fakeSender{}
	summary, err := newReminderService(t, env, sender, now).SendTourReminders(ctx)
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if summary.Skipped != 1 || len(sender.sent) != 0 {
		t.Fatalf("expected the link to be skipped, got %+v", summary)
	}
}

func TestSchedulerRejectsInvalidSchedule(t *testing.T) {
	scheduler := NewScheduler(nil)
	if err := scheduler.Add("broken", "not a cron spec", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected an invalid schedule to be rejected")
	}
	if err := scheduler.Add("purge", "@hourly", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected @hourly to be accepted: %v", err)
	}
}
