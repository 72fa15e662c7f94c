package services

import (
	"strings"
	"testing"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

func newCognitiveForTest(t *testing.T) CognitiveService {
	t.Helper()
	return NewCognitiveService(logger.NewNop(), config.Default().Engine)
}

const simpleText = "The cat sat on the mat. The dog ran to the park. We like to play."

const complexText = "Neuroplasticity, which underpins experience-dependent cortical reorganization, necessitates sustained synaptic potentiation; consequently, intervention protocols (particularly pharmacological adjuncts) require longitudinal, randomized, placebo-controlled evaluation, and comprehensive neuropsychological assessment batteries, whereby statistically significant improvements manifest."

func TestAnalyzeLoadOrdering(t *testing.T) {
	svc := newCognitiveForTest(t)

	simple, err := svc.AnalyzeLoad(simpleText)
	if err != nil {
		t.Fatalf("AnalyzeLoad simple: %v", err)
	}
	complexLoad, err := svc.AnalyzeLoad(complexText)
	if err != nil {
		t.Fatalf("AnalyzeLoad complex: %v", err)
	}
	if complexLoad.Total <= simple.Total {
		t.Fatalf("complex total %v should exceed simple total %v", complexLoad.Total, simple.Total)
	}
	if simple.Level != domain.LoadLevelFor(simple.Total) {
		t.Fatalf("level %q inconsistent with total %v", simple.Level, simple.Total)
	}
	for _, v := range []float64{simple.Intrinsic, simple.Extraneous, simple.Germane, complexLoad.Intrinsic, complexLoad.Extraneous, complexLoad.Germane} {
		if v < 0 || v > 100 {
			t.Fatalf("dimension %v outside [0,100]", v)
		}
	}
}

func TestAnalyzeLoadEmptyContent(t *testing.T) {
	svc := newCognitiveForTest(t)

	if _, err := svc.AnalyzeLoad("   "); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestUserStateFatigueMonotonic(t *testing.T) {
	svc := newCognitiveForTest(t)

	prev := 0.0
	for _, minutes := range []float64{0, 10, 30, 60, 120} {
		state, err := svc.UserState("u1", minutes)
		if err != nil {
			t.Fatalf("UserState(%v): %v", minutes, err)
		}
		if state.FatigueFactor < 1 {
			t.Fatalf("fatigue %v below 1", state.FatigueFactor)
		}
		if state.FatigueFactor <= prev && minutes > 0 {
			t.Fatalf("fatigue must grow with duration: %v at %v minutes", state.FatigueFactor, minutes)
		}
		prev = state.FatigueFactor
	}
}

func TestUserStateCapacityFloor(t *testing.T) {
	svc := newCognitiveForTest(t)

	state, err := svc.UserState("u1", 10000)
	if err != nil {
		t.Fatalf("UserState: %v", err)
	}
	if state.AvailableCapacity != 20 {
		t.Fatalf("capacity = %v, want floored at 20", state.AvailableCapacity)
	}
}

func TestUserStateNegativeMinutes(t *testing.T) {
	svc := newCognitiveForTest(t)

	if _, err := svc.UserState("u1", -5); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}

func TestAdjustContentFitsUnchanged(t *testing.T) {
	svc := newCognitiveForTest(t)

	state, err := svc.UserState("u1", 0)
	if err != nil {
		t.Fatalf("UserState: %v", err)
	}
	out, err := svc.AdjustContent(simpleText, state)
	if err != nil {
		t.Fatalf("AdjustContent: %v", err)
	}
	if out.Content != simpleText {
		t.Fatalf("fitting content must come back unchanged")
	}
	if len(out.Adjustments) != 0 {
		t.Fatalf("fitting content must record no adjustments, got %v", out.Adjustments)
	}
	if out.LoadBefore != out.LoadAfter {
		t.Fatalf("load must not change: %v -> %v", out.LoadBefore, out.LoadAfter)
	}
}

func TestAdjustContentSimplifiesOverload(t *testing.T) {
	svc := newCognitiveForTest(t)

	// An exhausted user has almost no capacity left.
	state, err := svc.UserState("u1", 10000)
	if err != nil {
		t.Fatalf("UserState: %v", err)
	}
	out, err := svc.AdjustContent(complexText, state)
	if err != nil {
		t.Fatalf("AdjustContent: %v", err)
	}
	if len(out.Adjustments) == 0 {
		t.Fatalf("overloading content must be adjusted")
	}
	if out.Content == complexText {
		t.Fatalf("adjusted content must differ from the source")
	}
	if out.LoadBefore <= state.AvailableCapacity {
		t.Fatalf("test premise broken: load %v fits capacity %v", out.LoadBefore, state.AvailableCapacity)
	}
	// Every word of the source survives somewhere in the output.
	for _, w := range strings.Fields("neuropsychological assessment batteries") {
		if !strings.Contains(out.Content, w) {
			t.Fatalf("adjustment dropped %q", w)
		}
	}
}

func TestPacingRecommendation(t *testing.T) {
	svc := newCognitiveForTest(t)

	tests := []struct {
		name     string
		minutes  float64
		wantPace string
	}{
		{"rested", 0, domain.PaceSpeedUp},
		{"moderate", 15, domain.PaceSteady},
		{"exhausted", 40, domain.PaceSlowDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := "pace-" + tt.name
			if _, err := svc.UserState(user, tt.minutes); err != nil {
				t.Fatalf("UserState: %v", err)
			}
			rec, err := svc.PacingRecommendation(user)
			if err != nil {
				t.Fatalf("PacingRecommendation: %v", err)
			}
			if rec.Pace != tt.wantPace {
				t.Fatalf("pace = %q, want %q", rec.Pace, tt.wantPace)
			}
			if tt.wantPace == domain.PaceSlowDown && rec.SuggestedBreakMins <= 0 {
				t.Fatalf("slow_down must suggest a break")
			}
		})
	}
}

func TestPacingRecommendationUnseenUser(t *testing.T) {
	svc := newCognitiveForTest(t)

	rec, err := svc.PacingRecommendation("ghost")
	if err != nil {
		t.Fatalf("PacingRecommendation: %v", err)
	}
	if rec.Pace != domain.PaceSpeedUp {
		t.Fatalf("unseen user pace = %q, want speed_up", rec.Pace)
	}
}
