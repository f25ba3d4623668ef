package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"bilingui/backend/models"
)

// LeaderboardService ranks users by total XP over a time window.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	TotalXP   int    `json:"total_xp"`
	Level     int    `json:"level"`
}

type Leaderboard struct {
	Type       string             `json:"type"`
	Rankings   []LeaderboardEntry `json:"rankings"`
	UserRank   int                `json:"user_rank,omitempty"`
	TotalUsers int64              `json:"total_users"`
	Rewards    map[string]string  `json:"rewards"`
	NextUpdate time.Time          `json:"next_update"`
}

// Generate builds the ranked board. leaderboardType is weekly, monthly or
// all_time; weekly and monthly only count users active inside the window.
func (s *LeaderboardService) Generate(leaderboardType string, userID uint) (*Leaderboard, error) {
	q := s.DB.Model(&models.UserStats{}).
		Select("user_stats.user_id, users.name, users.avatar_url, user_stats.total_xp, user_stats.level").
		Joins("JOIN users ON users.id = user_stats.user_id")

	switch leaderboardType {
	case "weekly":
		q = q.Where("user_stats.last_active >= ?", time.Now().AddDate(0, 0, -7))
	case "monthly":
		q = q.Where("user_stats.last_active >= ?", time.Now().AddDate(0, -1, 0))
	case "all_time":
		// no window
	default:
		return nil, fmt.Errorf("unknown leaderboard type %q", leaderboardType)
	}

	var rows []LeaderboardEntry
	if err := q.Order("user_stats.total_xp DESC").Limit(50).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}

	var total int64
	if err := s.DB.Model(&models.UserStats{}).Count(&total).Error; err != nil {
		return nil, err
	}

	board := &Leaderboard{
		Type:       leaderboardType,
		Rankings:   rows,
		TotalUsers: total,
		Rewards:    leaderboardRewards(leaderboardType),
		NextUpdate: nextLeaderboardUpdate(leaderboardType),
	}

	if userID != 0 {
		rank, err := s.rankOf(userID)
		if err == nil {
			board.UserRank = rank
		}
	}

	return board, nil
}

func (s *LeaderboardService) rankOf(userID uint) (int, error) {
	var stats models.UserStats
	if err := s.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return 0, err
	}

	var better int64
	if err := s.DB.Model(&models.UserStats{}).
		Where("total_xp > ?", stats.TotalXP).
		Count(&better).Error; err != nil {
		return 0, err
	}
	return int(better) + 1, nil
}

func leaderboardRewards(leaderboardType string) map[string]string {
	switch leaderboardType {
	case "weekly":
		return map[string]string{"1st": "500 XP + Weekly Champion badge", "top10": "100 XP"}
	case "monthly":
		return map[string]string{"1st": "2000 XP + Monthly Champion badge", "top10": "400 XP"}
	default:
		return map[string]string{"top10": "Hall of Fame entry"}
	}
}

func nextLeaderboardUpdate(leaderboardType string) time.Time {
	now := time.Now()
	switch leaderboardType {
	case "weekly":
		days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days).Truncate(24 * time.Hour)
	case "monthly":
		return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	default:
		return now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	}
}
