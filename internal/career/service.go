// internal/career/service.go
package career

import (
	"context"
	stderrors "errors"
	"time"

	"career-workers/internal/cache"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"
	"career-workers/internal/history"
	"career-workers/internal/recommendation"
)

const (
	ChannelZeebe = "zeebe"
	ChannelHTTP  = "http"

	SourceProfileForm       = "profile form"
	SourceResumeProfileForm = "resume and profile form"
	SourceJobVariables      = "job variables"
	SourceCache             = "cache"
)

var ErrHistoryDisabled = stderrors.New("history store not configured")

type Request struct {
	Profile recommendation.Profile
	Channel string
	Source  string
	UserID  string
}

type Result struct {
	Label    recommendation.Label `json:"label"`
	Source   string               `json:"source"`
	Strategy string               `json:"strategy"`
	Cached   bool                 `json:"cached"`
}

type Options struct {
	Strategies    *recommendation.Registry
	Strategy      string
	Cache         *cache.RecommendationCache
	History       history.Store
	Observability *observability.Observability
	Logger        logger.Logger
}

type Service struct {
	strategies *recommendation.Registry
	strategy   string
	cache      *cache.RecommendationCache
	history    history.Store
	obs        *observability.Observability
	logger     logger.Logger
}

// NewService fails with UNKNOWN_STRATEGY when opts.Strategy is not registered.
func NewService(opts Options) (*Service, error) {
	if opts.Strategies == nil {
		opts.Strategies = recommendation.NewRegistry()
	}
	if opts.Strategy == "" {
		opts.Strategy = recommendation.DefaultStrategy
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if _, err := opts.Strategies.Get(opts.Strategy); err != nil {
		return nil, errors.NewUnknownStrategyError(opts.Strategy)
	}

	return &Service{
		strategies: opts.Strategies,
		strategy:   opts.Strategy,
		cache:      opts.Cache,
		history:    opts.History,
		obs:        opts.Observability,
		logger:     opts.Logger,
	}, nil
}

func (s *Service) Strategy() string {
	return s.strategy
}

// Recommend produces a label for req.Profile. Every call, cached or not, is
// written to history. Cache and history failures are logged and never change
// the outcome.
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.obs.RecordRequest(ctx, req.Channel, req.Source, "error", time.Since(start))
		return nil, errors.NewTimeoutError("recommendation", err)
	}

	recommender, err := s.strategies.Get(s.strategy)
	if err != nil {
		s.obs.RecordRequest(ctx, req.Channel, req.Source, "error", time.Since(start))
		return nil, errors.NewUnknownStrategyError(s.strategy)
	}

	if label, ok := s.lookup(ctx, req.Profile); ok {
		result := &Result{Label: label, Source: SourceCache, Strategy: s.strategy, Cached: true}
		s.saveHistory(ctx, req, result)
		s.finish(ctx, req, result, start)
		return result, nil
	}

	result := &Result{
		Label:    recommender.Recommend(req.Profile),
		Source:   req.Source,
		Strategy: s.strategy,
	}

	if err := s.cache.Set(ctx, s.strategy, req.Profile, result.Label); err != nil {
		s.logger.Warn("failed to cache recommendation", map[string]interface{}{
			"code":  string(errors.ErrCodeCacheUnavailable),
			"error": err.Error(),
		})
	}
	s.saveHistory(ctx, req, result)
	s.finish(ctx, req, result, start)
	return result, nil
}

// History returns the latest stored recommendations for a user.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]history.Record, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	records, err := s.history.Recent(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}
	return records, nil
}

func (s *Service) lookup(ctx context.Context, profile recommendation.Profile) (recommendation.Label, bool) {
	if !s.cache.Enabled() {
		return "", false
	}
	label, found, err := s.cache.Get(ctx, s.strategy, profile)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("recommendation cache lookup failed", map[string]interface{}{
			"code":  string(errors.ErrCodeCacheUnavailable),
			"error": err.Error(),
		})
		return "", false
	case found:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return label, true
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return "", false
	}
}

func (s *Service) saveHistory(ctx context.Context, req Request, result *Result) {
	if s.history == nil {
		return
	}
	rec := &history.Record{
		Channel:       req.Channel,
		UserID:        req.UserID,
		Label:         result.Label,
		Strategy:      result.Strategy,
		Source:        result.Source,
		Skills:        req.Profile.Skills,
		Interests:     req.Profile.Interests,
		Qualification: req.Profile.Qualification,
	}
	if err := s.history.Save(ctx, rec); err != nil {
		stdErr := errors.NewHistoryWriteFailedError(err)
		s.logger.Warn(stdErr.Message, map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
	}
}

func (s *Service) finish(ctx context.Context, req Request, result *Result, start time.Time) {
	metrics.RecommendationsTotal.WithLabelValues(string(result.Label), req.Channel).Inc()
	s.obs.RecordRequest(ctx, req.Channel, result.Source, "ok", time.Since(start))
	s.logger.Info("career recommended", map[string]interface{}{
		"label":    string(result.Label),
		"channel":  req.Channel,
		"source":   result.Source,
		"strategy": result.Strategy,
		"cached":   result.Cached,
	})
}
