package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/mood_chat_server/internal/model"
	"github.com/qs3c/mood_chat_server/internal/model/dto"
)

const statsDateLayout = "2006-01-02"

// ConversationRepository 对话记录只追加，不提供修改和删除
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Record 写入一轮对话，回填 ID 和 CreatedAt
func (r *ConversationRepository) Record(ctx context.Context, conv *model.Conversation) error {
	if !conv.UserMood.Valid() {
		return errors.New("conversation mood is not a known label")
	}
	return r.db.WithContext(ctx).Create(conv).Error
}

// ListForUser 获取用户全部对话，最新的在前
func (r *ConversationRepository) ListForUser(ctx context.Context, userID int64) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&convs).Error
	return convs, err
}

// CountSince 统计 cutoff 之后的对话数
func (r *ConversationRepository) CountSince(ctx context.Context, userID int64, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("user_id = ? AND created_at > ?", userID, cutoff.UTC()).
		Count(&count).Error
	return count, err
}

type moodRow struct {
	CreatedAt time.Time
	UserMood  string
}

// DailyAggregate 按 loc 时区的自然日聚合 since 之后的对话，日期倒序，没有消息的日期不返回
func (r *ConversationRepository) DailyAggregate(ctx context.Context, userID int64, since time.Time, loc *time.Location) ([]dto.DailyStat, error) {
	if loc == nil {
		loc = time.UTC
	}

	var rows []moodRow
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Select("created_at", "user_mood").
		Where("user_id = ? AND created_at > ?", userID, since.UTC()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	type bucket struct {
		count int
		moods map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	for _, row := range rows {
		day := row.CreatedAt.In(loc).Format(statsDateLayout)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{moods: make(map[string]struct{})}
			buckets[day] = b
		}
		b.count++
		b.moods[row.UserMood] = struct{}{}
	}

	stats := make([]dto.DailyStat, 0, len(buckets))
	for day, b := range buckets {
		moods := make([]string, 0, len(b.moods))
		for m := range b.moods {
			moods = append(moods, m)
		}
		sort.Strings(moods)
		stats = append(stats, dto.DailyStat{
			Date:         day,
			MessageCount: b.count,
			Moods:        moods,
		})
	}

	// YYYY-MM-DD 字典序即日期序
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date > stats[j].Date
	})

	return stats, nil
}
