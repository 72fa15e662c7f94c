package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

func newMicroForTest(t *testing.T) MicroLearnService {
	t.Helper()
	return NewMicroLearnService(logger.NewNop(), config.Default().Engine)
}

const sampleContent = `Spaced repetition spreads review sessions over growing intervals. Each successful recall pushes the next review further out. Failed recalls reset the interval.

The spacing effect was first documented by Ebbinghaus. His forgetting curve shows retention decaying fast without review. Modern schedulers fit the curve per item.

Why does spacing work? Retrieval effort strengthens the memory trace. Easy reviews teach little.`

func TestChunkContentPreservesWords(t *testing.T) {
	svc := newMicroForTest(t)

	units, err := svc.ChunkContent(sampleContent, "memory", 30)
	if err != nil {
		t.Fatalf("ChunkContent: %v", err)
	}
	if len(units) == 0 {
		t.Fatalf("expected at least one unit")
	}

	var joined []string
	for _, u := range units {
		joined = append(joined, u.Content)
	}
	got := strings.Fields(strings.Join(joined, " "))
	want := strings.Fields(sampleContent)
	if len(got) != len(want) {
		t.Fatalf("word count changed: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word %d changed: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunkContentRespectsBudget(t *testing.T) {
	svc := newMicroForTest(t)

	target := 30
	units, err := svc.ChunkContent(sampleContent, "memory", target)
	if err != nil {
		t.Fatalf("ChunkContent: %v", err)
	}
	// Ceil rounding may push a unit one second over the raw target; the
	// configured tolerance covers that.
	limit := float64(target) * (1 + config.Default().Engine.ChunkTolerance)
	for _, u := range units {
		if float64(u.DurationSeconds) > limit {
			t.Fatalf("unit duration %ds exceeds %v", u.DurationSeconds, limit)
		}
		if u.DurationSeconds <= 0 {
			t.Fatalf("unit duration must be positive")
		}
		if u.ID == "" || u.Topic != "memory" {
			t.Fatalf("unit metadata incomplete: %+v", u)
		}
	}
}

func TestChunkContentValidation(t *testing.T) {
	svc := newMicroForTest(t)

	tests := []struct {
		name    string
		content string
		target  int
	}{
		{"zero target", sampleContent, 0},
		{"negative target", sampleContent, -10},
		{"empty content", "   ", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ChunkContent(tt.content, "x", tt.target)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := apierr.StatusOf(err); got != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", got)
			}
		})
	}
}

func TestDetectMomentTooShort(t *testing.T) {
	svc := newMicroForTest(t)

	moment, err := svc.DetectMoment("u1", domain.MomentWaiting, 10)
	if err != nil {
		t.Fatalf("DetectMoment: %v", err)
	}
	if moment != nil {
		t.Fatalf("10 seconds is below the usable minimum, got %+v", moment)
	}
}

func TestDetectMomentSuggestsUnits(t *testing.T) {
	svc := newMicroForTest(t)

	if _, err := svc.ChunkContent(sampleContent, "memory", 30); err != nil {
		t.Fatalf("ChunkContent: %v", err)
	}
	moment, err := svc.DetectMoment("u1", domain.MomentCommute, 60)
	if err != nil {
		t.Fatalf("DetectMoment: %v", err)
	}
	if moment == nil {
		t.Fatalf("60 seconds should be a usable moment")
	}
	if len(moment.SuggestedUnitIDs) == 0 {
		t.Fatalf("a detected moment must carry suggestions")
	}
	if moment.Type != domain.MomentCommute || moment.AvailableSeconds != 60 {
		t.Fatalf("moment metadata wrong: %+v", moment)
	}
}

func TestDetectMomentEmptyPoolStillSuggests(t *testing.T) {
	svc := newMicroForTest(t)

	moment, err := svc.DetectMoment("u1", domain.MomentBreak, 45)
	if err != nil {
		t.Fatalf("DetectMoment: %v", err)
	}
	if moment == nil || len(moment.SuggestedUnitIDs) == 0 {
		t.Fatalf("detection should fall back to a review suggestion, got %+v", moment)
	}
}

func TestDetectMomentValidation(t *testing.T) {
	svc := newMicroForTest(t)

	if _, err := svc.DetectMoment("u1", domain.MomentType("nap"), 60); err == nil {
		t.Fatalf("expected error for unknown moment type")
	}
	if _, err := svc.DetectMoment("u1", domain.MomentWaiting, -5); err == nil {
		t.Fatalf("expected error for negative seconds")
	}
}

func TestFeedRotation(t *testing.T) {
	svc := newMicroForTest(t)

	units, err := svc.ChunkContent(sampleContent, "memory", 20)
	if err != nil {
		t.Fatalf("ChunkContent: %v", err)
	}
	if len(units) < 2 {
		t.Fatalf("need at least 2 units for rotation, got %d", len(units))
	}

	first, err := svc.Feed("u1", 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	second, err := svc.Feed("u1", 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if first[0].ID == second[0].ID {
		t.Fatalf("repeat feed calls should rotate through the pool")
	}

	// A different user starts from the top.
	other, err := svc.Feed("u2", 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if other[0].ID != first[0].ID {
		t.Fatalf("cursor must be per user")
	}
}

func TestFeedEmptyPool(t *testing.T) {
	svc := newMicroForTest(t)

	units, err := svc.Feed("u1", 5)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(units) != 0 {
		t.Fatalf("empty pool should yield an empty feed")
	}
}

func TestFeedValidation(t *testing.T) {
	svc := newMicroForTest(t)

	if _, err := svc.Feed("u1", 0); err == nil {
		t.Fatalf("expected error for non-positive count")
	}
	if _, err := svc.Feed("", 5); err == nil {
		t.Fatalf("expected error for blank user id")
	}
}
