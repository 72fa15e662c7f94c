package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type MicroLearnService interface {
	ChunkContent(content, topic string, targetSeconds int) ([]domain.MicroContentUnit, error)
	DetectMoment(userID string, momentType domain.MomentType, availableSeconds int) (*domain.LearningMoment, error)
	Feed(userID string, count int) ([]domain.MicroContentUnit, error)
}

const poolCap = 500

type microLearnService struct {
	log *logger.Logger
	cfg config.EngineConfig

	mu      sync.Mutex
	pool    []domain.MicroContentUnit
	cursors map[string]int
}

func NewMicroLearnService(baseLog *logger.Logger, cfg config.EngineConfig) MicroLearnService {
	return &microLearnService{
		log:     baseLog.With("service", "MicroLearnService"),
		cfg:     cfg,
		cursors: make(map[string]int),
	}
}

// ChunkContent splits a content blob into units each budgeted at no more than
// targetSeconds (within the configured tolerance). Structural boundaries
// (paragraphs, then sentences) are preferred; a hard word cut happens only
// when a single sentence alone overruns the budget. The concatenation of the
// returned bodies preserves every word of the source.
func (s *microLearnService) ChunkContent(content, topic string, targetSeconds int) ([]domain.MicroContentUnit, error) {
	if targetSeconds <= 0 {
		return nil, apierr.Invalidf("invalid_target_duration", "target duration must be positive, got %d", targetSeconds)
	}
	if strings.TrimSpace(content) == "" {
		return nil, apierr.Invalid("empty_content", fmt.Errorf("content is required"))
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "untitled"
	}

	wps := float64(s.cfg.ReadingWordsPerMinute) / 60.0
	budgetWords := int(float64(targetSeconds) * wps)
	if budgetWords < 1 {
		budgetWords = 1
	}

	var bodies []string
	for _, para := range splitParagraphs(content) {
		if wordCount(para) <= budgetWords {
			bodies = append(bodies, para)
			continue
		}
		bodies = append(bodies, packSentences(para, budgetWords)...)
	}

	units := make([]domain.MicroContentUnit, 0, len(bodies))
	for i, body := range bodies {
		words := wordCount(body)
		dur := int(math.Ceil(float64(words) / wps))
		units = append(units, domain.MicroContentUnit{
			ID:              uuid.New().String(),
			ContentType:     "text",
			Topic:           topic,
			Title:           fmt.Sprintf("%s (%d/%d)", topic, i+1, len(bodies)),
			Content:         body,
			DurationSeconds: dur,
			Interaction:     interactionFor(body),
		})
	}

	s.mu.Lock()
	s.pool = append(s.pool, units...)
	if len(s.pool) > poolCap {
		s.pool = s.pool[len(s.pool)-poolCap:]
	}
	s.mu.Unlock()

	s.log.Debug("content chunked", "topic", topic, "units", len(units), "target_seconds", targetSeconds)
	return units, nil
}

// packSentences greedily fills chunks with whole sentences up to the word
// budget, hard-cutting only sentences that alone exceed it.
func packSentences(para string, budgetWords int) []string {
	var out []string
	var cur []string
	curWords := 0
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
			cur = nil
			curWords = 0
		}
	}
	for _, sent := range splitSentences(para) {
		w := wordCount(sent)
		if w > budgetWords {
			flush()
			words := strings.Fields(sent)
			for len(words) > 0 {
				n := budgetWords
				if n > len(words) {
					n = len(words)
				}
				out = append(out, strings.Join(words[:n], " "))
				words = words[n:]
			}
			continue
		}
		if curWords+w > budgetWords {
			flush()
		}
		cur = append(cur, sent)
		curWords += w
	}
	flush()
	return out
}

func interactionFor(body string) domain.InteractionMode {
	switch {
	case strings.Contains(body, "?"):
		return domain.InteractionQuiz
	case wordCount(body) < 20:
		return domain.InteractionFlashcard
	default:
		return domain.InteractionSwipeRead
	}
}

// DetectMoment returns nil (no error) when the available window is too short
// to be usable. With a usable window it suggests pool units ranked by how
// closely their duration fills the window, generating a lightweight review
// set when the pool has nothing that fits.
func (s *microLearnService) DetectMoment(userID string, momentType domain.MomentType, availableSeconds int) (*domain.LearningMoment, error) {
	if !momentType.Valid() {
		return nil, apierr.Invalidf("unknown_moment_type", "unknown moment type %q", momentType)
	}
	if availableSeconds < 0 {
		return nil, apierr.Invalidf("negative_seconds", "available seconds must be non-negative, got %d", availableSeconds)
	}
	if availableSeconds < s.cfg.MinMomentSeconds {
		return nil, nil
	}
	userID = strings.TrimSpace(userID)

	s.mu.Lock()
	fitting := make([]domain.MicroContentUnit, 0, len(s.pool))
	for _, u := range s.pool {
		if u.DurationSeconds <= availableSeconds {
			fitting = append(fitting, u)
		}
	}
	s.mu.Unlock()

	// Prefer units that use more of the window.
	sort.SliceStable(fitting, func(i, j int) bool {
		return fitting[i].DurationSeconds > fitting[j].DurationSeconds
	})
	if len(fitting) > s.cfg.MaxMomentSuggestions {
		fitting = fitting[:s.cfg.MaxMomentSuggestions]
	}
	if len(fitting) == 0 {
		fitting = s.starterUnits(availableSeconds)
	}

	ids := make([]string, 0, len(fitting))
	for _, u := range fitting {
		ids = append(ids, u.ID)
	}
	return &domain.LearningMoment{
		ID:               uuid.New().String(),
		UserID:           userID,
		Type:             momentType,
		AvailableSeconds: availableSeconds,
		SuggestedUnitIDs: ids,
	}, nil
}

// starterUnits fabricates a small review set sized to the window so that a
// detected moment always carries at least one suggestion.
func (s *microLearnService) starterUnits(availableSeconds int) []domain.MicroContentUnit {
	dur := availableSeconds
	if dur > 60 {
		dur = 60
	}
	u := domain.MicroContentUnit{
		ID:              uuid.New().String(),
		ContentType:     "review",
		Topic:           "quick review",
		Title:           "Quick review",
		Content:         "Revisit the last thing you learned.",
		DurationSeconds: dur,
		Interaction:     domain.InteractionFlashcard,
	}
	s.mu.Lock()
	s.pool = append(s.pool, u)
	s.mu.Unlock()
	return []domain.MicroContentUnit{u}
}

// Feed returns up to count units for swipe-style consumption, advancing a
// per-user cursor so repeat calls rotate through the pool.
func (s *microLearnService) Feed(userID string, count int) ([]domain.MicroContentUnit, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	if count <= 0 {
		return nil, apierr.Invalidf("invalid_count", "count must be positive, got %d", count)
	}
	if count > s.cfg.MaxFeedCount {
		count = s.cfg.MaxFeedCount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pool) == 0 {
		return []domain.MicroContentUnit{}, nil
	}
	if count > len(s.pool) {
		count = len(s.pool)
	}
	start := s.cursors[userID] % len(s.pool)
	out := make([]domain.MicroContentUnit, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.pool[(start+i)%len(s.pool)])
	}
	s.cursors[userID] = (start + count) % len(s.pool)
	return out, nil
}
