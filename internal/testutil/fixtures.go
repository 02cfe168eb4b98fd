package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
)

var seq int64

func nextSeq() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := nextSeq()
	email := fmt.Sprintf("test_%d@example.com", n)
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", n),
		Email:        &email,
		PasswordHash: &passwordHash,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = &hash
	}
}

// TestBook 创建测试图书
func TestBook(t *testing.T, db *gorm.DB, opts ...func(*model.Book)) *model.Book {
	t.Helper()

	n := nextSeq()
	book := &model.Book{
		GoogleBooksID: fmt.Sprintf("gb_%d", n),
		Title:         fmt.Sprintf("Test Book %d", n),
		Authors:       "Test Author",
	}

	for _, opt := range opts {
		opt(book)
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}

	return book
}

// WithBookTitle 设置图书标题
func WithBookTitle(title string) func(*model.Book) {
	return func(b *model.Book) {
		b.Title = title
	}
}

// TestMovie 创建测试电影
func TestMovie(t *testing.T, db *gorm.DB, opts ...func(*model.Movie)) *model.Movie {
	t.Helper()

	n := nextSeq()
	release := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	movie := &model.Movie{
		TMDBID:      n,
		Title:       fmt.Sprintf("Test Movie %d", n),
		Overview:    "Test overview",
		ReleaseDate: &release,
	}

	for _, opt := range opts {
		opt(movie)
	}

	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("Failed to create test movie: %v", err)
	}

	return movie
}

// WithMovieTitle 设置电影标题
func WithMovieTitle(title string) func(*model.Movie) {
	return func(m *model.Movie) {
		m.Title = title
	}
}

// TestRating 直接写入评分（不产生动态）
func TestRating(t *testing.T, db *gorm.DB, userID int64, target model.TargetRef, score int) *model.Rating {
	t.Helper()

	rating := &model.Rating{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Score:      score,
	}

	if err := db.Create(rating).Error; err != nil {
		t.Fatalf("Failed to create test rating: %v", err)
	}

	return rating
}

// TestReview 直接写入评论（不产生动态）
func TestReview(t *testing.T, db *gorm.DB, userID int64, target model.TargetRef, text string) *model.Review {
	t.Helper()

	review := &model.Review{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Text:       text,
	}

	if err := db.Create(review).Error; err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}

	return review
}

// TestList 创建测试列表
func TestList(t *testing.T, db *gorm.DB, userID int64, name string) *model.PersonalList {
	t.Helper()

	list := &model.PersonalList{
		UserID: userID,
		Name:   name,
	}

	if err := db.Create(list).Error; err != nil {
		t.Fatalf("Failed to create test list: %v", err)
	}

	return list
}

// TestFollow 直接写入关注关系（不产生动态）
func TestFollow(t *testing.T, db *gorm.DB, followerID, followingID int64) *model.Follow {
	t.Helper()

	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}

	if err := db.Create(follow).Error; err != nil {
		t.Fatalf("Failed to create test follow: %v", err)
	}

	return follow
}

// TestActivity 直接写入动态
func TestActivity(t *testing.T, db *gorm.DB, userID int64, kind model.ActivityKind, target model.TargetRef) *model.Activity {
	t.Helper()

	activity := &model.Activity{
		UserID:     userID,
		Kind:       kind,
		TargetKind: target.Kind,
		TargetID:   target.ID,
	}

	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("Failed to create test activity: %v", err)
	}

	return activity
}
