package services

import (
	"testing"
	"time"

	"github.com/facebookgo/clock"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

func newMomentumForTest(t *testing.T) (MomentumService, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	return NewMomentumService(logger.NewNop(), config.Default().Engine, clk, nil), clk
}

func TestStatusFreshUser(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	rec, err := svc.Status("newbie")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if rec.Score != 50 {
		t.Fatalf("fresh score = %v, want the 50 baseline", rec.Score)
	}
	if rec.State != domain.MomentumSteady {
		t.Fatalf("fresh state = %q, want steady", rec.State)
	}
	if rec.DailyStreak != 0 || rec.WeeklyStreak != 0 {
		t.Fatalf("fresh streaks = %d/%d", rec.DailyStreak, rec.WeeklyStreak)
	}
	if rec.RiskFactors == nil || rec.BoostOpportunities == nil {
		t.Fatalf("risk and boost sets must be present, possibly empty")
	}
}

func TestRecordActivityRaisesScore(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	rec, err := svc.RecordActivity("u1", domain.ActivitySessionComplete, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if rec.Score != 60 {
		t.Fatalf("score = %v, want 50 + 10", rec.Score)
	}
	if rec.SessionsToday != 1 {
		t.Fatalf("sessions today = %d, want 1", rec.SessionsToday)
	}
	if rec.DailyStreak != 1 {
		t.Fatalf("streak = %d, want 1", rec.DailyStreak)
	}
}

func TestRecordActivityScoreClamped(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	var rec *domain.MomentumRecord
	var err error
	for i := 0; i < 20; i++ {
		rec, err = svc.RecordActivity("u1", domain.ActivitySessionComplete, 1)
		if err != nil {
			t.Fatalf("RecordActivity #%d: %v", i+1, err)
		}
	}
	if rec.Score != 100 {
		t.Fatalf("score = %v, want clamped to 100", rec.Score)
	}
	if rec.State != domain.MomentumSurging {
		t.Fatalf("state = %q, want surging at 100", rec.State)
	}
}

func TestDecayAppliesLazily(t *testing.T) {
	svc, clk := newMomentumForTest(t)

	if _, err := svc.Status("u1"); err != nil {
		t.Fatalf("Status: %v", err)
	}
	clk.Add(3 * 24 * time.Hour)

	rec, err := svc.Status("u1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	// Three idle days at 8 points each.
	if rec.Score != 26 {
		t.Fatalf("score after 3 idle days = %v, want 26", rec.Score)
	}
	if rec.State != domain.MomentumCooling {
		t.Fatalf("state = %q, want cooling", rec.State)
	}
}

func TestDecayFloorsAtZero(t *testing.T) {
	svc, clk := newMomentumForTest(t)

	if _, err := svc.Status("u1"); err != nil {
		t.Fatalf("Status: %v", err)
	}
	clk.Add(60 * 24 * time.Hour)

	rec, err := svc.Status("u1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if rec.Score != 0 {
		t.Fatalf("score = %v, want floored at 0", rec.Score)
	}
	if rec.State != domain.MomentumDormant {
		t.Fatalf("state = %q, want dormant at 0", rec.State)
	}
}

func TestDailyStreakOncePerDay(t *testing.T) {
	svc, clk := newMomentumForTest(t)

	rec, err := svc.RecordActivity("u1", domain.ActivityItemComplete, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if rec.DailyStreak != 1 {
		t.Fatalf("streak = %d, want 1", rec.DailyStreak)
	}

	// More activity the same day does not advance the streak.
	rec, err = svc.RecordActivity("u1", domain.ActivityItemComplete, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if rec.DailyStreak != 1 {
		t.Fatalf("same-day streak = %d, want still 1", rec.DailyStreak)
	}

	clk.Add(24 * time.Hour)
	rec, err = svc.RecordActivity("u1", domain.ActivityItemComplete, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if rec.DailyStreak != 2 {
		t.Fatalf("next-day streak = %d, want 2", rec.DailyStreak)
	}

	// Skipping a day resets to 1, not 0.
	clk.Add(48 * time.Hour)
	rec, err = svc.RecordActivity("u1", domain.ActivityItemComplete, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if rec.DailyStreak != 1 {
		t.Fatalf("streak after gap = %d, want reset to 1", rec.DailyStreak)
	}
}

func TestDailyLoginContributesOncePerDay(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	first, err := svc.RecordActivity("u1", domain.ActivityDailyLogin, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	second, err := svc.RecordActivity("u1", domain.ActivityDailyLogin, 1)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if second.Score != first.Score {
		t.Fatalf("second login same day moved the score: %v -> %v", first.Score, second.Score)
	}
}

func TestRecordActivityValidation(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	if _, err := svc.RecordActivity("u1", domain.ActivityType("nap"), 1); err == nil {
		t.Fatalf("expected error for unknown activity type")
	}
	if _, err := svc.RecordActivity("u1", domain.ActivitySessionComplete, -1); err == nil {
		t.Fatalf("expected error for negative value")
	}
	if _, err := svc.RecordActivity("", domain.ActivitySessionComplete, 1); err == nil {
		t.Fatalf("expected error for blank user id")
	}
}

func TestComebackPathTiers(t *testing.T) {
	svc, clk := newMomentumForTest(t)

	// Dormant user gets the full three-step ramp.
	if _, err := svc.Status("cold"); err != nil {
		t.Fatalf("Status: %v", err)
	}
	clk.Add(30 * 24 * time.Hour)
	plan, err := svc.ComebackPath("cold")
	if err != nil {
		t.Fatalf("ComebackPath: %v", err)
	}
	if len(plan.Steps) != 3 {
		t.Fatalf("cold plan steps = %d, want 3", len(plan.Steps))
	}
	for i, step := range plan.Steps {
		if step.Order != i+1 {
			t.Fatalf("step order %d at index %d", step.Order, i)
		}
		if step.TargetMinutes <= 0 || step.Action == "" {
			t.Fatalf("incomplete step: %+v", step)
		}
	}

	// Healthy user gets a single maintenance step.
	if _, err := svc.RecordActivity("warm", domain.ActivitySessionComplete, 2); err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	plan, err = svc.ComebackPath("warm")
	if err != nil {
		t.Fatalf("ComebackPath: %v", err)
	}
	if len(plan.Steps) != 1 {
		t.Fatalf("healthy plan steps = %d, want 1", len(plan.Steps))
	}
}

func TestBoostNotificationQuietWhenHealthy(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	// Push well past the mid band so no boost rule applies.
	for i := 0; i < 5; i++ {
		if _, err := svc.RecordActivity("u1", domain.ActivitySessionComplete, 1); err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
	}
	note, err := svc.BoostNotification("u1")
	if err != nil {
		t.Fatalf("BoostNotification: %v", err)
	}
	if note != nil {
		t.Fatalf("healthy user should get no nudge, got %+v", note)
	}
}

func TestBoostNotificationMidBand(t *testing.T) {
	svc, _ := newMomentumForTest(t)

	// Baseline 50 sits in the push-to-next-band window.
	note, err := svc.BoostNotification("u1")
	if err != nil {
		t.Fatalf("BoostNotification: %v", err)
	}
	if note == nil || note.Kind != domain.BoostPushToNextBand {
		t.Fatalf("expected a push-to-next-band nudge, got %+v", note)
	}
}

func TestBoostNotificationStreakAtRisk(t *testing.T) {
	svc, clk := newMomentumForTest(t)

	for day := 0; day < 4; day++ {
		if _, err := svc.RecordActivity("u1", domain.ActivitySessionComplete, 1); err != nil {
			t.Fatalf("RecordActivity day %d: %v", day, err)
		}
		clk.Add(24 * time.Hour)
	}
	// A full day has passed since the last session; the 4-day streak is at risk.
	note, err := svc.BoostNotification("u1")
	if err != nil {
		t.Fatalf("BoostNotification: %v", err)
	}
	if note == nil || note.Kind != domain.RiskStreakAtRisk {
		t.Fatalf("expected a streak-at-risk nudge, got %+v", note)
	}
}
