package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

func (r *RecommendationRepository) CreateBatch(logs []model.RecommendationLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.DB.Create(&logs).Error
}
