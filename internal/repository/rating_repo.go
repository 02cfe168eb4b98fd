package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return &RatingRepository{db: tx}
}

// Upsert 按 (user, target) 写入评分：已存在则只更新分数。
// 返回的 created 表示这次是否真正插入了新行。
func (r *RatingRepository) Upsert(userID int64, target model.TargetRef, score int) (*model.Rating, bool, error) {
	existing, err := r.GetByUserAndTarget(userID, target)
	if err == nil {
		if err := r.UpdateScore(existing, score); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, err
	}

	rating := &model.Rating{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Score:      score,
	}
	err = insertOnce(r.db, rating)
	if err == nil {
		return rating, true, nil
	}
	if !IsDuplicateKey(err) {
		return nil, false, err
	}

	// 并发首次写入：另一请求已插入，转为更新
	existing, err = r.getByUserAndTarget(userID, target, lockingRead)
	if err != nil {
		return nil, false, err
	}
	if err := r.UpdateScore(existing, score); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *RatingRepository) UpdateScore(rating *model.Rating, score int) error {
	if err := r.db.Model(rating).Update("score", score).Error; err != nil {
		return err
	}
	rating.Score = score
	return nil
}

func (r *RatingRepository) GetByID(id int64) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("id = ?", id).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByIDWithUser 获取评分及用户信息
func (r *RatingRepository) GetByIDWithUser(id int64) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Preload("User").Where("id = ?", id).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) GetByUserAndTarget(userID int64, target model.TargetRef) (*model.Rating, error) {
	return r.getByUserAndTarget(userID, target)
}

func (r *RatingRepository) getByUserAndTarget(userID int64, target model.TargetRef, scopes ...func(*gorm.DB) *gorm.DB) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Scopes(scopes...).Scopes(targetScope(target)).Where("user_id = ?", userID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByUser 获取用户的评分列表
func (r *RatingRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Rating, int64, error) {
	var ratings []*model.Rating
	var total int64

	query := r.db.Model(&model.Rating{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at DESC, id DESC").Scopes(paginate(page, pageSize)).Find(&ratings).Error
	return ratings, total, err
}

// AverageScore 目标的平均分，无评分时返回 nil
func (r *RatingRepository) AverageScore(target model.TargetRef) (*float64, error) {
	var result struct {
		Avg *float64
	}
	err := r.db.Model(&model.Rating{}).Scopes(targetScope(target)).Select("AVG(score) AS avg").Scan(&result).Error
	return result.Avg, err
}

// AverageScores 按目标分组的平均分
func (r *RatingRepository) AverageScores(kind model.TargetKind) (map[int64]float64, error) {
	var rows []struct {
		TargetID int64
		Avg      float64
	}
	err := r.db.Model(&model.Rating{}).
		Select("target_id, AVG(score) AS avg").
		Where("target_kind = ?", kind).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]float64, len(rows))
	for _, row := range rows {
		result[row.TargetID] = row.Avg
	}
	return result, nil
}

func (r *RatingRepository) Delete(id int64) error {
	return r.db.Delete(&model.Rating{}, id).Error
}
