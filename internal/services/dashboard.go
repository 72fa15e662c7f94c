package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/facebookgo/clock"
	"golang.org/x/sync/errgroup"

	redisclient "github.com/mindpace/mindpace-backend/internal/clients/redis"
	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type DashboardService interface {
	QualityReport(ctx context.Context, userID string) (*domain.QualityReport, error)
}

type dashboardService struct {
	log       *logger.Logger
	cfg       config.EngineConfig
	clk       clock.Clock
	cache     *redisclient.Cache
	attention AttentionService
	feedback  FeedbackService
	momentum  MomentumService
	cognitive CognitiveService
}

func NewDashboardService(
	baseLog *logger.Logger,
	cfg config.EngineConfig,
	clk clock.Clock,
	cache *redisclient.Cache,
	attention AttentionService,
	feedback FeedbackService,
	momentum MomentumService,
	cognitive CognitiveService,
) DashboardService {
	return &dashboardService{
		log:       baseLog.With("service", "DashboardService"),
		cfg:       cfg,
		clk:       clk,
		cache:     cache,
		attention: attention,
		feedback:  feedback,
		momentum:  momentum,
		cognitive: cognitive,
	}
}

// QualityReport fans out to the four trackers concurrently and merges their
// answers. Each tracker tolerates an unseen user, so a brand-new user id gets
// a complete defaulted report, never an error.
func (s *dashboardService) QualityReport(ctx context.Context, userID string) (*domain.QualityReport, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Invalid("missing_user_id", fmt.Errorf("user id is required"))
	}

	cacheKey := "dashboard:" + userID
	if raw, ok := s.cache.Get(ctx, cacheKey); ok {
		var cached domain.QualityReport
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	report := &domain.QualityReport{
		UserID:      userID,
		GeneratedAt: s.clk.Now().UTC(),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Attention = s.attention.Summary(userID)
		return nil
	})
	g.Go(func() error {
		report.Performance = s.feedback.Stats(userID)
		return nil
	})
	g.Go(func() error {
		rec, err := s.momentum.Status(userID)
		if err != nil {
			return err
		}
		report.Momentum = rec
		return nil
	})
	g.Go(func() error {
		report.Cognitive = s.cognitive.LastState(userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Recommendations = s.recommend(report)

	if raw, err := json.Marshal(report); err == nil {
		s.cache.Set(ctx, cacheKey, raw, s.cfg.ReportCacheTTL)
	}
	return report, nil
}

// recommend turns cross-tracker signals into at most four prioritized
// recommendations, lowest priority number first.
func (s *dashboardService) recommend(r *domain.QualityReport) []domain.Recommendation {
	recs := []domain.Recommendation{}

	if r.Momentum != nil {
		if r.Momentum.Score < 30 {
			recs = append(recs, domain.Recommendation{
				Priority: 1,
				Kind:     "momentum_low",
				Message:  "Momentum is fading. A single short session today turns it around.",
			})
		}
		for _, risk := range r.Momentum.RiskFactors {
			if risk == domain.RiskStreakAtRisk {
				recs = append(recs, domain.Recommendation{
					Priority: 1,
					Kind:     "streak_at_risk",
					Message:  fmt.Sprintf("Your %d-day streak ends tonight without a session.", r.Momentum.DailyStreak),
				})
			}
		}
	}

	if r.Cognitive != nil && r.Cognitive.FatigueFactor > 1.4 {
		recs = append(recs, domain.Recommendation{
			Priority: 2,
			Kind:     "fatigue_high",
			Message:  "You've been at it a while. A 10-minute break will restore focus.",
		})
	}

	if r.Performance != nil {
		total := r.Performance.TotalCorrect + r.Performance.TotalIncorrect
		if total > 0 && r.Performance.Accuracy < 0.6 {
			recs = append(recs, domain.Recommendation{
				Priority: 2,
				Kind:     "accuracy_low",
				Message:  "Accuracy has dipped. Easier material for a few items rebuilds confidence.",
			})
		}
	}

	if r.Attention != nil && r.Attention.TotalFlowMinutes > 60 {
		recs = append(recs, domain.Recommendation{
			Priority: 3,
			Kind:     "flow_strong",
			Message:  "You hit flow often. Scheduling sessions in your peak hours keeps it going.",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority < recs[j].Priority })
	if len(recs) > 4 {
		recs = recs[:4]
	}
	return recs
}
