package model

import (
	"time"
)

// Book 图书（由目录导入任务写入，核心只读）
type Book struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	GoogleBooksID string `gorm:"size:50;uniqueIndex;not null" json:"google_books_id"`
	Title         string `gorm:"size:255;not null;index" json:"title"`
	Authors       string `gorm:"type:text" json:"authors"`
	Description   string `gorm:"type:text" json:"description"`
	PageCount     *int   `json:"page_count,omitempty"`
	CoverURL      string `gorm:"size:500" json:"cover_url"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) Ref() TargetRef {
	return TargetRef{Kind: KindBook, ID: b.ID}
}

// Movie 电影（由目录导入任务写入，核心只读）
type Movie struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	TMDBID      int64      `gorm:"column:tmdb_id;uniqueIndex;not null" json:"tmdb_id"`
	Title       string     `gorm:"size:255;not null;index" json:"title"`
	Overview    string     `gorm:"type:text" json:"overview"`
	ReleaseDate *time.Time `gorm:"type:date" json:"release_date,omitempty"`
	PosterPath  string     `gorm:"size:500" json:"poster_path"`
}

func (Movie) TableName() string {
	return "movies"
}

func (m *Movie) Ref() TargetRef {
	return TargetRef{Kind: KindMovie, ID: m.ID}
}
