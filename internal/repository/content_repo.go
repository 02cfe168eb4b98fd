package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) WithTx(tx *gorm.DB) *ContentRepository {
	return &ContentRepository{db: tx}
}

func (r *ContentRepository) GetBook(id int64) (*model.Book, error) {
	var book model.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *ContentRepository) GetMovie(id int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetBooks 批量获取图书
func (r *ContentRepository) GetBooks(ids []int64) (map[int64]*model.Book, error) {
	result := make(map[int64]*model.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var books []*model.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	for _, b := range books {
		result[b.ID] = b
	}
	return result, nil
}

// GetMovies 批量获取电影
func (r *ContentRepository) GetMovies(ids []int64) (map[int64]*model.Movie, error) {
	result := make(map[int64]*model.Movie, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var movies []*model.Movie
	if err := r.db.Where("id IN ?", ids).Find(&movies).Error; err != nil {
		return nil, err
	}
	for _, m := range movies {
		result[m.ID] = m
	}
	return result, nil
}

// SearchBooks 按标题、作者或简介模糊搜索
func (r *ContentRepository) SearchBooks(keyword string) ([]*model.Book, error) {
	var books []*model.Book
	pattern := "%" + strings.ToLower(keyword) + "%"
	err := r.db.Where("LOWER(title) LIKE ? OR LOWER(authors) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern).
		Order("title ASC, id ASC").
		Find(&books).Error
	return books, err
}

// SearchMovies 按标题或简介模糊搜索
func (r *ContentRepository) SearchMovies(keyword string) ([]*model.Movie, error) {
	var movies []*model.Movie
	pattern := "%" + strings.ToLower(keyword) + "%"
	err := r.db.Where("LOWER(title) LIKE ? OR LOWER(overview) LIKE ?", pattern, pattern).
		Order("title ASC, id ASC").
		Find(&movies).Error
	return movies, err
}

// LatestIDs 按 ID 倒序取内容 ID，跳过 exclude 中的
func (r *ContentRepository) LatestIDs(kind model.TargetKind, limit int, exclude []int64) ([]int64, error) {
	var ids []int64
	query := r.db.Order("id DESC").Limit(limit)
	switch kind {
	case model.KindBook:
		query = query.Model(&model.Book{})
	case model.KindMovie:
		query = query.Model(&model.Movie{})
	default:
		return ids, nil
	}
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	err := query.Pluck("id", &ids).Error
	return ids, err
}
