package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/facebookgo/clock"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

func newAttentionForTest(t *testing.T) (AttentionService, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	cfg := config.Default().Engine
	return NewAttentionService(logger.NewNop(), cfg, clk), clk
}

func TestStartSessionDefaults(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	sess, err := svc.StartSession("u1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected a session id")
	}
	// Fresh profile prefers 25 minutes; easy content stretches it by 1.2.
	if got, want := sess.OptimalLengthMinutes, 30.0; got != want {
		t.Fatalf("optimal length = %v, want %v", got, want)
	}
	if sess.NextBreakAt == nil {
		t.Fatalf("expected a scheduled break")
	}
	if sess.DistractionRisk <= 0 || sess.DistractionRisk >= 1 {
		t.Fatalf("risk %v out of (0,1)", sess.DistractionRisk)
	}
}

func TestStartSessionDifficultyShortensWindow(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	easy, err := svc.StartSession("u-easy", 0)
	if err != nil {
		t.Fatalf("StartSession easy: %v", err)
	}
	hard, err := svc.StartSession("u-hard", 1)
	if err != nil {
		t.Fatalf("StartSession hard: %v", err)
	}
	if hard.OptimalLengthMinutes >= easy.OptimalLengthMinutes {
		t.Fatalf("hard window %v should be shorter than easy %v", hard.OptimalLengthMinutes, easy.OptimalLengthMinutes)
	}
	if hard.DistractionRisk <= easy.DistractionRisk {
		t.Fatalf("hard risk %v should exceed easy risk %v", hard.DistractionRisk, easy.DistractionRisk)
	}
}

func TestStartSessionValidation(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	_, err := svc.StartSession("  ", 0.5)
	if err == nil {
		t.Fatalf("expected error for blank user id")
	}
	if got := apierr.StatusOf(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
}

func TestRecordSignalUnknownSession(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	_, err := svc.RecordSignal("nope", domain.SignalActive, 0)
	if err == nil {
		t.Fatalf("expected error for unknown session")
	}
	if got := apierr.StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestRecordSignalUnknownType(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	sess, err := svc.StartSession("u1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	_, err = svc.RecordSignal(sess.ID, domain.AttentionSignal("daydream"), 0)
	if err == nil {
		t.Fatalf("expected error for unknown signal type")
	}
	if got := apierr.StatusOf(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
}

func TestFlowDetection(t *testing.T) {
	svc, clk := newAttentionForTest(t)

	sess, err := svc.StartSession("u1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	// Below the threshold no flow is credited yet.
	clk.Add(5 * time.Minute)
	res, err := svc.RecordSignal(sess.ID, domain.SignalActive, 0)
	if err != nil {
		t.Fatalf("RecordSignal: %v", err)
	}
	if res.InFlow {
		t.Fatalf("5 minutes of activity should not count as flow")
	}

	clk.Add(7 * time.Minute)
	res, err = svc.RecordSignal(sess.ID, domain.SignalActive, 0)
	if err != nil {
		t.Fatalf("RecordSignal: %v", err)
	}
	if !res.InFlow {
		t.Fatalf("12 minutes of uninterrupted activity should be flow")
	}
	if res.FlowMinutes <= 0 {
		t.Fatalf("flow minutes should accumulate, got %v", res.FlowMinutes)
	}
}

func TestFlowMarksPeakHour(t *testing.T) {
	svc, clk := newAttentionForTest(t)

	sess, err := svc.StartSession("u1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	// An hour of sustained activity, well past the flow threshold.
	for i := 0; i < 30; i++ {
		clk.Add(2 * time.Minute)
		if _, err := svc.RecordSignal(sess.ID, domain.SignalActive, 0); err != nil {
			t.Fatalf("RecordSignal #%d: %v", i+1, err)
		}
	}

	sum := svc.Summary("u1")
	if len(sum.PeakHours) == 0 {
		t.Fatalf("sustained flow should mark the hour as peak")
	}
	if !hourIn(sum.PeakHours, clk.Now().Hour()) {
		t.Fatalf("peak hours %v missing the flow hour %d", sum.PeakHours, clk.Now().Hour())
	}

	// The learned peak hour feeds the session config.
	cfg, err := svc.OptimalConfig("u1", "text")
	if err != nil {
		t.Fatalf("OptimalConfig: %v", err)
	}
	if !cfg.InPeakHour {
		t.Fatalf("config should report the current hour as peak")
	}
}

func TestDistractionBreakRecommendation(t *testing.T) {
	svc, clk := newAttentionForTest(t)

	sess, err := svc.StartSession("u1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	var last *domain.SignalResult
	for i := 0; i < 3; i++ {
		clk.Add(time.Minute)
		last, err = svc.RecordSignal(sess.ID, domain.SignalDistraction, 0)
		if err != nil {
			t.Fatalf("RecordSignal #%d: %v", i+1, err)
		}
	}
	// 0.1 + 3*0.25 crosses the 0.7 threshold.
	if !last.BreakRecommended {
		t.Fatalf("risk %v should have triggered a break", last.DistractionRisk)
	}

	// Returning dampens the risk and reschedules the break.
	clk.Add(30 * time.Second)
	res, err := svc.RecordSignal(sess.ID, domain.SignalReturn, 0)
	if err != nil {
		t.Fatalf("RecordSignal return: %v", err)
	}
	if res.DistractionRisk >= last.DistractionRisk {
		t.Fatalf("return should reduce risk: %v -> %v", last.DistractionRisk, res.DistractionRisk)
	}
	if res.NextBreakAt == nil || !res.NextBreakAt.After(clk.Now()) {
		t.Fatalf("return should reschedule the break into the future")
	}
}

func TestOptimalConfigContentTypes(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	base, err := svc.OptimalConfig("u1", "text")
	if err != nil {
		t.Fatalf("OptimalConfig: %v", err)
	}
	quiz, err := svc.OptimalConfig("u1", "quiz")
	if err != nil {
		t.Fatalf("OptimalConfig quiz: %v", err)
	}
	if quiz.RecommendedMinutes >= base.RecommendedMinutes {
		t.Fatalf("quiz window %v should be shorter than text %v", quiz.RecommendedMinutes, base.RecommendedMinutes)
	}
	if base.BreakEveryMinutes <= 0 || base.BreakLengthSeconds <= 0 {
		t.Fatalf("break schedule missing: %+v", base)
	}
}

func TestSummaryFreshUser(t *testing.T) {
	svc, _ := newAttentionForTest(t)

	sum := svc.Summary("never-seen")
	if sum.UserID != "never-seen" {
		t.Fatalf("user id = %q", sum.UserID)
	}
	if sum.AvgFocusMinutes != 25 {
		t.Fatalf("fresh avg focus = %v, want default 25", sum.AvgFocusMinutes)
	}
	if sum.ActiveSessions != 0 || sum.TotalFlowMinutes != 0 {
		t.Fatalf("fresh summary should be empty: %+v", sum)
	}
}
