package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/mood_chat_server/config"
	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
	"github.com/qs3c/mood_chat_server/internal/repository"
)

// QuotaService 免费用户在滑动窗口内的消息额度，只读，不维护计数器
type QuotaService struct {
	userRepo *repository.UserRepository
	convRepo *repository.ConversationRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewQuotaService(userRepo *repository.UserRepository, convRepo *repository.ConversationRepository, cfg *config.Config) *QuotaService {
	return &QuotaService{
		userRepo: userRepo,
		convRepo: convRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// MaySend 用户当前是否还能发送消息，用户不存在时返回 false
func (s *QuotaService) MaySend(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: load user %d: %v", ErrStorage, userID, err)
	}

	if user.IsPremium {
		return true, nil
	}

	used, err := s.usedInWindow(ctx, userID)
	if err != nil {
		return false, err
	}

	return used < int64(s.cfg.Quota.FreeMessageLimit), nil
}

// GetQuotaInfo 获取配额使用情况
func (s *QuotaService) GetQuotaInfo(ctx context.Context, userID int64) (*dto.QuotaInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: load user %d: %v", ErrStorage, userID, err)
	}

	used, err := s.usedInWindow(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildQuotaInfo(user, int(used), s.cfg.Quota), nil
}

func (s *QuotaService) usedInWindow(ctx context.Context, userID int64) (int64, error) {
	cutoff := s.now().Add(-s.cfg.Quota.Window())
	count, err := s.convRepo.CountSince(ctx, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: count messages: %v", ErrStorage, err)
	}
	return count, nil
}

func buildQuotaInfo(user *model.User, used int, cfg config.QuotaConfig) *dto.QuotaInfo {
	info := &dto.QuotaInfo{
		IsPremium:   user.IsPremium,
		Limit:       cfg.FreeMessageLimit,
		Used:        used,
		WindowHours: cfg.WindowHours,
		Unlimited:   user.IsPremium,
	}

	if !user.IsPremium {
		info.Remaining = cfg.FreeMessageLimit - used
		if info.Remaining < 0 {
			info.Remaining = 0
		}
	}

	return info
}
