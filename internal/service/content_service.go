package service

import (
	"context"
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContentService struct {
	SubjectRepo  *repository.SubjectRepository
	QuestionRepo *repository.QuestionRepository
	ResourceRepo *repository.ResourceRepository
	Storage      *StorageService
}

func NewContentService(
	subjectRepo *repository.SubjectRepository,
	questionRepo *repository.QuestionRepository,
	resourceRepo *repository.ResourceRepository,
	storage *StorageService,
) *ContentService {
	return &ContentService{
		SubjectRepo:  subjectRepo,
		QuestionRepo: questionRepo,
		ResourceRepo: resourceRepo,
		Storage:      storage,
	}
}

func (s *ContentService) ListSubjects() ([]model.Subject, error) {
	return s.SubjectRepo.List()
}

func (s *ContentService) GetSubject(id uint) (*model.Subject, error) {
	return s.SubjectRepo.FindByID(id)
}

func (s *ContentService) CreateSubject(subject *model.Subject) error {
	return s.SubjectRepo.Create(subject)
}

func (s *ContentService) UpdateSubject(subject *model.Subject) error {
	return s.SubjectRepo.Update(subject)
}

func (s *ContentService) DeleteSubject(id uint) error {
	return s.SubjectRepo.Delete(id)
}

func (s *ContentService) ListTopics(subjectID uint) ([]model.Topic, error) {
	return s.SubjectRepo.ListTopics(subjectID)
}

func (s *ContentService) CreateTopic(topic *model.Topic) error {
	return s.SubjectRepo.CreateTopic(topic)
}

func (s *ContentService) UpdateTopic(topic *model.Topic) error {
	return s.SubjectRepo.UpdateTopic(topic)
}

func (s *ContentService) DeleteTopic(id uint) error {
	return s.SubjectRepo.DeleteTopic(id)
}

func (s *ContentService) ListQuestions(topicID uint, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.ListByTopic(topicID, page, limit)
}

func (s *ContentService) CreateQuestion(question *model.Question) error {
	if question.Guessing == 0 && question.Type == model.MultipleChoice && len(question.Options) > 0 {
		// Uncalibrated MCQ: pseudo-guessing from the option count.
		question.Guessing = 1 / float64(len(question.Options))
	}
	if question.Discrimination == 0 {
		question.Discrimination = 1
	}
	return s.QuestionRepo.Create(question)
}

func (s *ContentService) UpdateQuestion(question *model.Question) error {
	return s.QuestionRepo.Update(question)
}

func (s *ContentService) DeleteQuestion(id uint) error {
	return s.QuestionRepo.Delete(id)
}

// CalibrateQuestions refreshes IRT difficulty from historical accuracy for
// every question of a topic.
func (s *ContentService) CalibrateQuestions(topicID uint) (int, error) {
	ids, err := s.QuestionRepo.ActiveIDsByTopics([]uint{topicID})
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	proportions, err := s.QuestionRepo.ProportionCorrect(ids)
	if err != nil {
		return 0, err
	}

	calibrated := 0
	for id, pCorrect := range proportions {
		difficulty := knowledge.CalibrateDifficulty(pCorrect)
		if err := s.QuestionRepo.UpdateItemParams(id, difficulty, 1.0, 0.25); err != nil {
			logger.Log.Warn("calibration update failed", zap.Uint("question_id", id), zap.Error(err))
			continue
		}
		calibrated++
	}
	return calibrated, nil
}

func (s *ContentService) ListResources(topicID uint) ([]model.LectureResource, error) {
	return s.ResourceRepo.ListByTopic(topicID)
}

// UploadLecture stores the file and, for videos, probes duration and
// dimensions before persisting the record.
func (s *ContentService) UploadLecture(uploaderID, topicID uint, title, kind string, file *multipart.FileHeader) (*model.LectureResource, error) {
	if _, err := s.SubjectRepo.FindTopicByID(topicID); err != nil {
		return nil, err
	}

	ext := filepath.Ext(file.Filename)
	storedName := fmt.Sprintf("lectures/%s%s", uuid.New().String(), ext)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	resource := &model.LectureResource{
		TopicID:    topicID,
		UploaderID: uploaderID,
		Title:      title,
		Kind:       kind,
		SizeBytes:  file.Size,
	}

	if kind == "video" {
		// Probe needs a local path; spool through a temp file.
		tmp, err := os.CreateTemp("", "lecture-*"+ext)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.ReadFrom(src); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()

		if info, err := util.ProbeVideo(tmp.Name()); err != nil {
			logger.Log.Warn("video probe failed", zap.String("file", file.Filename), zap.Error(err))
		} else {
			resource.DurationSeconds = info.Duration
			resource.Width = info.Width
			resource.Height = info.Height
		}

		probed, err := os.Open(tmp.Name())
		if err != nil {
			return nil, err
		}
		defer probed.Close()

		url, err := s.Storage.Provider.Upload(context.Background(), storedName, probed, file.Size, contentTypeFor(ext))
		if err != nil {
			return nil, err
		}
		resource.URL = url
	} else {
		url, err := s.Storage.Provider.Upload(context.Background(), storedName, src, file.Size, contentTypeFor(ext))
		if err != nil {
			return nil, err
		}
		resource.URL = url
	}

	if err := s.ResourceRepo.Create(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ContentService) DeleteResource(id uint) error {
	resource, err := s.ResourceRepo.FindByID(id)
	if err != nil {
		return err
	}

	// Best effort: the DB row is authoritative.
	if idx := strings.Index(resource.URL, "lectures/"); idx >= 0 {
		s.Storage.Provider.Delete(context.Background(), resource.URL[idx:])
	}

	return s.ResourceRepo.Delete(id)
}

func contentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp4":
		return "video/mp4"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
