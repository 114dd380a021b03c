package service

import (
	"context"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "leaderboard:mock_tests"

// LeaderboardService keeps each user's best mock-test percentage in a Redis
// sorted set.
type LeaderboardService struct {
	Redis    *redis.Client
	UserRepo *repository.UserRepository
}

func NewLeaderboardService(rdb *redis.Client, userRepo *repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{Redis: rdb, UserRepo: userRepo}
}

// RecordScore keeps the member's best score (ZADD GT).
func (s *LeaderboardService) RecordScore(userID uint, score float64) error {
	ctx := context.Background()
	member := fmt.Sprintf("%d", userID)

	current, err := s.Redis.ZScore(ctx, leaderboardKey, member).Result()
	if err == nil && current >= score {
		return nil
	}
	if err != nil && err != redis.Nil {
		return err
	}

	return s.Redis.ZAdd(ctx, leaderboardKey, &redis.Z{Score: score, Member: member}).Err()
}

func (s *LeaderboardService) Top(n int) ([]model.LeaderboardEntry, error) {
	ctx := context.Background()

	zs, err := s.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(zs))
	for _, z := range zs {
		var id uint
		fmt.Sscanf(z.Member.(string), "%d", &id)
		ids = append(ids, id)
	}

	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	entries := make([]model.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		entries = append(entries, model.LeaderboardEntry{
			Rank:   i + 1,
			UserID: ids[i],
			Name:   names[ids[i]],
			Score:  z.Score,
		})
	}
	return entries, nil
}

// Percentile is the share of leaderboard members scoring at or below the
// given score.
func (s *LeaderboardService) Percentile(score float64) (float64, error) {
	ctx := context.Background()

	total, err := s.Redis.ZCard(ctx, leaderboardKey).Result()
	if err != nil || total == 0 {
		return 0, err
	}

	below, err := s.Redis.ZCount(ctx, leaderboardKey, "-inf", fmt.Sprintf("%f", score)).Result()
	if err != nil {
		return 0, err
	}

	return float64(below) / float64(total) * 100, nil
}
