package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
	"github.com/qs3c/mood_chat_server/internal/repository"
)

type StatsService struct {
	convRepo *repository.ConversationRepository
	cfg      *config.Config
	loc      *time.Location
	now      func() time.Time
}

func NewStatsService(convRepo *repository.ConversationRepository, cfg *config.Config) (*StatsService, error) {
	loc, err := cfg.Stats.Location()
	if err != nil {
		return nil, fmt.Errorf("load stats timezone: %w", err)
	}
	return &StatsService{
		convRepo: convRepo,
		cfg:      cfg,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// DailyStats 最近 days 天按日统计的消息数和情绪，日期倒序
func (s *StatsService) DailyStats(ctx context.Context, userID int64, days int) ([]dto.DailyStat, error) {
	days = s.clampDays(days)

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	stats, err := s.convRepo.DailyAggregate(ctx, userID, since, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: daily stats: %v", ErrStorage, err)
	}
	return stats, nil
}

func (s *StatsService) clampDays(days int) int {
	if days <= 0 {
		days = s.cfg.Stats.DefaultDays
	}
	if s.cfg.Stats.MaxDays > 0 && days > s.cfg.Stats.MaxDays {
		days = s.cfg.Stats.MaxDays
	}
	return days
}
