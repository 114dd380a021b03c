package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newMockTestEnv(t *testing.T) (*MockTestService, *repository.MockTestRepository, *gorm.DB) {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Subject{}, &model.Topic{}, &model.Question{},
		&model.MockTest{}, &model.MockTestAttempt{}, &model.MockTestAnswer{},
		&model.TopicProgress{}, &model.ReviewSchedule{},
	))

	review := NewReviewService(repository.NewReviewRepository(db), repository.NewSubjectRepository(db))
	assessment := NewAssessmentService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewProgressRepository(db),
		review,
	)
	// Unreachable Redis: leaderboard writes degrade to logged warnings.
	leaderboard := NewLeaderboardService(
		redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		repository.NewUserRepository(db),
	)

	repo := repository.NewMockTestRepository(db)
	svc := NewMockTestService(repo, repository.NewQuestionRepository(db), assessment, leaderboard)
	return svc, repo, db
}

func seedMockTest(t *testing.T, db *gorm.DB) *model.MockTest {
	t.Helper()

	subject := model.Subject{Code: "phy", Name: "Physics", ExamWeight: 1}
	require.NoError(t, db.Create(&subject).Error)
	topic := model.Topic{SubjectID: subject.ID, Code: "mech", Name: "Mechanics", ExamWeight: 1}
	require.NoError(t, db.Create(&topic).Error)

	test := &model.MockTest{
		Title:           "Full syllabus mock",
		DurationMinutes: 60,
		TotalMarks:      2,
		Published:       true,
		Questions: []model.Question{
			{TopicID: topic.ID, Text: "q1", Options: []string{"a", "b"}, CorrectOption: 0, Active: true},
			{TopicID: topic.ID, Text: "q2", Options: []string{"a", "b"}, CorrectOption: 1, Active: true},
		},
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

func TestMockTestStartResumesOpenAttempt(t *testing.T) {
	svc, _, db := newMockTestEnv(t)
	test := seedMockTest(t, db)

	first, err := svc.Start(7, test.ID)
	require.NoError(t, err)

	second, err := svc.Start(7, test.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Attempt.ID, second.Attempt.ID)
}

func TestMockTestStartReplacesExpiredAttempt(t *testing.T) {
	svc, repo, db := newMockTestEnv(t)
	test := seedMockTest(t, db)

	stale := &model.MockTestAttempt{
		UserID:     7,
		MockTestID: test.ID,
		StartedAt:  time.Now().Add(-2 * time.Hour),
		Deadline:   time.Now().Add(-time.Hour),
		Total:      2,
	}
	require.NoError(t, repo.CreateAttempt(stale))

	view, err := svc.Start(7, test.ID)
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, view.Attempt.ID)
	assert.True(t, view.Deadline.After(time.Now()))

	closed, err := repo.FindAttempt(stale.ID, 7)
	require.NoError(t, err)
	assert.True(t, closed.Completed)
	assert.Equal(t, 0, closed.Score)
}

func TestMockTestSubmitAfterDeadline(t *testing.T) {
	svc, repo, db := newMockTestEnv(t)
	test := seedMockTest(t, db)

	attempt := &model.MockTestAttempt{
		UserID:     7,
		MockTestID: test.ID,
		StartedAt:  time.Now().Add(-2 * time.Hour),
		Deadline:   time.Now().Add(-time.Minute),
		Total:      2,
	}
	require.NoError(t, repo.CreateAttempt(attempt))

	_, err := svc.Submit(7, attempt.ID, []AnswerInput{{QuestionID: test.Questions[0].ID, Selected: 0}})
	assert.ErrorIs(t, err, util.ErrDeadlinePassed)
}

func TestMockTestSubmitGradesAndRejectsDuplicate(t *testing.T) {
	svc, _, db := newMockTestEnv(t)
	test := seedMockTest(t, db)

	view, err := svc.Start(7, test.ID)
	require.NoError(t, err)

	answers := []AnswerInput{
		{QuestionID: test.Questions[0].ID, Selected: 0},
		{QuestionID: test.Questions[1].ID, Selected: 0},
	}
	result, err := svc.Submit(7, view.Attempt.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 50.0, result.Percentage)

	_, err = svc.Submit(7, view.Attempt.ID, answers)
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
}
