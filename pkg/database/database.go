package database

import (
	"encoding/json"
	"fmt"
	"log"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，除非显式带 -migrate 启动
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Unit{},
		&model.UnitStep{},
		&model.Question{},
		&model.Hint{},
		&model.ReviewSet{},
		&model.UserUnitProgress{},
		&model.UnitTestAttempt{},
		&model.ReviewAttempt{},
		&model.DailyLearningLog{},
		&model.RecommendationLog{},
		&model.Badge{},
		&model.UserBadge{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults 空库时写入默认目录数据，保证新实例可直接联调
func seedDefaults(db *gorm.DB) {
	var subCount int64
	db.Model(&model.Subject{}).Count(&subCount)
	if subCount == 0 {
		defaultSubjects := []model.Subject{
			{ID: "sub_1a", Code: "1A", Name: "数学1A", SortOrder: 1},
			{ID: "sub_2b", Code: "2B", Name: "数学2B", SortOrder: 2},
			{ID: "sub_2c", Code: "2C", Name: "数学2C", SortOrder: 3},
		}
		for _, s := range defaultSubjects {
			db.Create(&s)
		}
	}

	var unitCount int64
	db.Model(&model.Unit{}).Count(&unitCount)
	if unitCount == 0 {
		unit := &model.Unit{
			ID:          "unit_1",
			SubjectCode: "1A",
			Title:       "数と式",
			Description: "文字式と計算",
			IsPublished: true,
			Steps: []model.UnitStep{
				{ID: "st_1", StepOrder: 1, StepType: model.StepIntro, Title: "導入", ContentMarkdown: "導入"},
				{ID: "st_2", StepOrder: 2, StepType: model.StepExample, Title: "例題", ContentMarkdown: "例題"},
				{ID: "st_3", StepOrder: 3, StepType: model.StepPractice, Title: "演習", ContentMarkdown: "演習"},
				{ID: "st_4", StepOrder: 4, StepType: model.StepTest, Title: "確認テスト", ContentMarkdown: "確認"},
			},
		}
		db.Create(unit)

		choices, _ := json.Marshal([]map[string]string{
			{"key": "A", "text": "2,3"},
			{"key": "B", "text": "1,6"},
		})
		defaultQuestions := []model.Question{
			{ID: "q_pr_1", UnitID: "unit_1", StepType: model.StepPractice, QuestionType: model.NumericInput, Body: "2+3= ?", CorrectAnswer: "5", Explanation: "2と3を足すと5"},
			{ID: "q_t_1", UnitID: "unit_1", StepType: model.StepTest, QuestionType: model.Dropdown, Body: "x^2-5x+6=0 の解", Choices: choices, CorrectAnswer: "A", Explanation: "(x-2)(x-3)=0"},
			{ID: "q_r_1", UnitID: "unit_1", StepType: model.StepReview, QuestionType: model.NumericInput, Body: "10-3=?", CorrectAnswer: "7", Explanation: "10から3を引く"},
			{ID: "q_r_2", UnitID: "unit_1", StepType: model.StepReview, QuestionType: model.NumericInput, Body: "8-2=?", CorrectAnswer: "6"},
			{ID: "q_r_3", UnitID: "unit_1", StepType: model.StepReview, QuestionType: model.NumericInput, Body: "6-1=?", CorrectAnswer: "5"},
			{ID: "q_r_4", UnitID: "unit_1", StepType: model.StepReview, QuestionType: model.NumericInput, Body: "4+4=?", CorrectAnswer: "8"},
			{ID: "q_r_5", UnitID: "unit_1", StepType: model.StepReview, QuestionType: model.NumericInput, Body: "9-4=?", CorrectAnswer: "5"},
		}
		for _, q := range defaultQuestions {
			db.Create(&q)
		}

		defaultHints := []model.Hint{
			{ID: "h_1", QuestionID: "q_t_1", HintLevel: 1, HintText: "積が6、和が-5"},
			{ID: "h_2", QuestionID: "q_t_1", HintLevel: 2, HintText: "2と3"},
		}
		for _, h := range defaultHints {
			db.Create(&h)
		}

		rs := &model.ReviewSet{ID: "rs_1", UnitID: "unit_1", RequiredCorrectCount: 4}
		rs.SetQuestionIDList([]string{"q_r_1", "q_r_2", "q_r_3", "q_r_4", "q_r_5"})
		db.Create(rs)
	}

	var badgeCount int64
	db.Model(&model.Badge{}).Count(&badgeCount)
	if badgeCount == 0 {
		streak3 := 3
		defaultBadges := []model.Badge{
			{ID: "b_first", BadgeType: model.FirstCompletion, Name: "初回完了"},
			{ID: "b_streak_3", BadgeType: model.Streak, Name: "3日継続", ConditionValue: &streak3},
		}
		for _, b := range defaultBadges {
			db.Create(&b)
		}
	}
}
