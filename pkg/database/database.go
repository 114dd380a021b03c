package database

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Topic{},
		&model.Question{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
		&model.MockTest{},
		&model.MockTestAttempt{},
		&model.MockTestAnswer{},
		&model.TopicProgress{},
		&model.ProgressSnapshot{},
		&model.ReviewSchedule{},
		&model.StudyPlan{},
		&model.StudySession{},
		&model.Recommendation{},
		&model.LectureResource{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the subject tree once on an empty database.
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count == 0 {
		seed := []model.Subject{
			{Code: "quant", Name: "Quantitative Aptitude", ExamWeight: 0.3, Order: 1, Topics: []model.Topic{
				{Code: "arithmetic", Name: "Arithmetic", ExamWeight: 0.35, Order: 1},
				{Code: "algebra", Name: "Algebra", ExamWeight: 0.25, Order: 2},
				{Code: "geometry", Name: "Geometry", ExamWeight: 0.2, Order: 3},
				{Code: "data-interpretation", Name: "Data Interpretation", ExamWeight: 0.2, Order: 4},
			}},
			{Code: "reasoning", Name: "Logical Reasoning", ExamWeight: 0.25, Order: 2, Topics: []model.Topic{
				{Code: "puzzles", Name: "Puzzles", ExamWeight: 0.4, Order: 1},
				{Code: "syllogism", Name: "Syllogism", ExamWeight: 0.3, Order: 2},
				{Code: "coding-decoding", Name: "Coding-Decoding", ExamWeight: 0.3, Order: 3},
			}},
			{Code: "english", Name: "English Language", ExamWeight: 0.2, Order: 3, Topics: []model.Topic{
				{Code: "reading-comprehension", Name: "Reading Comprehension", ExamWeight: 0.5, Order: 1},
				{Code: "grammar", Name: "Grammar", ExamWeight: 0.3, Order: 2},
				{Code: "vocabulary", Name: "Vocabulary", ExamWeight: 0.2, Order: 3},
			}},
			{Code: "general-studies", Name: "General Studies", ExamWeight: 0.25, Order: 4, Topics: []model.Topic{
				{Code: "current-affairs", Name: "Current Affairs", ExamWeight: 0.5, Order: 1},
				{Code: "static-gk", Name: "Static GK", ExamWeight: 0.5, Order: 2},
			}},
		}
		for i := range seed {
			db.Create(&seed[i])
		}
	}

	return db, nil
}
