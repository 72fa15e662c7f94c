package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type CognitiveService interface {
	AnalyzeLoad(content string) (*domain.ContentLoad, error)
	UserState(userID string, sessionMinutes float64) (*domain.CognitiveState, error)
	AdjustContent(content string, state *domain.CognitiveState) (*domain.AdjustedContent, error)
	PacingRecommendation(userID string) (*domain.PacingRecommendation, error)
	LastState(userID string) *domain.CognitiveState
}

type cognitiveService struct {
	log *logger.Logger
	cfg config.EngineConfig

	mu        sync.Mutex
	lastState map[string]*domain.CognitiveState
}

func NewCognitiveService(baseLog *logger.Logger, cfg config.EngineConfig) CognitiveService {
	return &cognitiveService{
		log:       baseLog.With("service", "CognitiveService"),
		cfg:       cfg,
		lastState: make(map[string]*domain.CognitiveState),
	}
}

// AnalyzeLoad scores content along the three Cognitive Load Theory
// dimensions. The heuristics are tuning; the banding of the total
// (domain.LoadLevelFor) is the contract.
func (s *cognitiveService) AnalyzeLoad(content string) (*domain.ContentLoad, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apierr.Invalid("empty_content", fmt.Errorf("content is required"))
	}

	words := strings.Fields(content)
	sentences := splitSentences(content)
	nWords := float64(len(words))
	nSentences := float64(len(sentences))
	if nSentences == 0 {
		nSentences = 1
	}

	// Intrinsic: vocabulary and sentence complexity.
	totalLetters := 0
	longWords := 0
	for _, w := range words {
		letters := len(strings.Trim(w, ".,;:!?()\"'"))
		totalLetters += letters
		if letters >= 7 {
			longWords++
		}
	}
	avgWordLen := float64(totalLetters) / nWords
	avgSentenceWords := nWords / nSentences
	intrinsic := clampFloat((avgWordLen-3.5)*14+float64(longWords)/nWords*80+(avgSentenceWords-8)*1.5, 0, 100)

	// Extraneous: presentation overhead from dense structure.
	commas := float64(strings.Count(content, ","))
	parens := float64(strings.Count(content, "("))
	semis := float64(strings.Count(content, ";"))
	clauses := float64(countAny(content, []string{" which ", " whereby ", " wherein ", " however, "}))
	extraneous := clampFloat(commas/nSentences*10+parens/nSentences*15+semis/nSentences*15+clauses*8, 0, 100)

	// Germane: cues that invite schema-building.
	connectives := float64(countAny(strings.ToLower(content), []string{
		"because", "therefore", "so that", "leads to", "this means",
		"for example", "such as", "in other words", "imagine", "like a",
	}))
	germane := clampFloat(connectives*12, 0, 100)

	total := 0.5*intrinsic + 0.3*extraneous + 0.2*germane
	return &domain.ContentLoad{
		Intrinsic:  intrinsic,
		Extraneous: extraneous,
		Germane:    germane,
		Total:      total,
		Level:      domain.LoadLevelFor(total),
	}, nil
}

func countAny(haystack string, needles []string) int {
	n := 0
	for _, needle := range needles {
		n += strings.Count(haystack, needle)
	}
	return n
}

// UserState derives the current cognitive state from session duration.
// Fatigue grows strictly with duration (floor 1.0); capacity shrinks with
// fatigue but never below the configured minimum.
func (s *cognitiveService) UserState(userID string, sessionMinutes float64) (*domain.CognitiveState, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	if sessionMinutes < 0 {
		return nil, apierr.Invalidf("negative_duration", "session minutes must be non-negative, got %v", sessionMinutes)
	}

	fatigue := 1 + s.cfg.FatigueSlope*sessionMinutes
	capacity := s.cfg.CapacityBaseline / fatigue
	if capacity < s.cfg.MinCapacity {
		capacity = s.cfg.MinCapacity
	}

	state := &domain.CognitiveState{
		UserID:            userID,
		SessionMinutes:    sessionMinutes,
		FatigueFactor:     fatigue,
		AvailableCapacity: capacity,
	}

	s.mu.Lock()
	cp := *state
	s.lastState[userID] = &cp
	s.mu.Unlock()

	return state, nil
}

// LastState returns the most recently derived state for the user, or the
// rested default. Pure read.
func (s *cognitiveService) LastState(userID string) *domain.CognitiveState {
	userID = strings.TrimSpace(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.lastState[userID]; ok {
		out := *st
		return &out
	}
	return &domain.CognitiveState{
		UserID:            userID,
		FatigueFactor:     1,
		AvailableCapacity: s.cfg.CapacityBaseline,
	}
}

// AdjustContent simplifies content whose total load exceeds the user's
// available capacity, recording each transform applied. Content that already
// fits comes back unchanged with an empty adjustment list, so re-applying to
// adjusted content is a no-op.
func (s *cognitiveService) AdjustContent(content string, state *domain.CognitiveState) (*domain.AdjustedContent, error) {
	if state == nil {
		return nil, apierr.Invalid("missing_state", fmt.Errorf("cognitive state is required"))
	}
	before, err := s.AnalyzeLoad(content)
	if err != nil {
		return nil, err
	}

	out := &domain.AdjustedContent{
		Content:     content,
		Adjustments: []string{},
		LoadBefore:  before.Total,
		LoadAfter:   before.Total,
	}
	if before.Total <= state.AvailableCapacity {
		return out, nil
	}

	adjusted := content
	if strings.Contains(adjusted, ", and ") || strings.Contains(adjusted, "; ") {
		adjusted = strings.ReplaceAll(adjusted, "; ", ". ")
		adjusted = strings.ReplaceAll(adjusted, ", and ", ". And ")
		out.Adjustments = append(out.Adjustments, "split_long_sentences")
	}
	adjusted, shortened := tightenParagraphs(adjusted)
	if shortened {
		out.Adjustments = append(out.Adjustments, "shortened_paragraphs")
	}

	after, err := s.AnalyzeLoad(adjusted)
	if err != nil {
		return nil, err
	}
	if after.Total > state.AvailableCapacity {
		if first := firstSentence(adjusted); first != "" {
			adjusted = "Key idea: " + first + "\n\n" + adjusted
			out.Adjustments = append(out.Adjustments, "added_signposting")
			if re, err2 := s.AnalyzeLoad(adjusted); err2 == nil {
				after = re
			}
		}
	}

	out.Content = adjusted
	out.LoadAfter = after.Total
	return out, nil
}

// tightenParagraphs splits paragraphs longer than four sentences in two.
func tightenParagraphs(content string) (string, bool) {
	paras := splitParagraphs(content)
	changed := false
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		sents := splitSentences(p)
		if len(sents) > 4 {
			mid := len(sents) / 2
			out = append(out, strings.Join(sents[:mid], " "), strings.Join(sents[mid:], " "))
			changed = true
			continue
		}
		out = append(out, p)
	}
	if !changed {
		return content, false
	}
	return strings.Join(out, "\n\n"), true
}

func firstSentence(content string) string {
	sents := splitSentences(content)
	if len(sents) == 0 {
		return ""
	}
	return sents[0]
}

// PacingRecommendation derives a pace purely from the last observed
// cognitive state.
func (s *cognitiveService) PacingRecommendation(userID string) (*domain.PacingRecommendation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}
	state := s.LastState(userID)

	rec := &domain.PacingRecommendation{UserID: userID}
	switch {
	case state.FatigueFactor > 1.4:
		rec.Pace = domain.PaceSlowDown
		rec.Reason = "fatigue is high for this session length"
		rec.SuggestedBreakMins = 10
	case state.FatigueFactor > 1.15:
		rec.Pace = domain.PaceSteady
		rec.Reason = "moderate fatigue; hold the current pace"
	default:
		rec.Pace = domain.PaceSpeedUp
		rec.Reason = "plenty of capacity available"
	}
	return rec, nil
}
