package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/repository"
)

const (
	DiscoverPopular  = "popular"
	DiscoverTopRated = "top_rated"

	discoverLimit = 10
)

// ContentService 图书/电影的只读查询，聚合字段按请求实时计算
type ContentService struct {
	resolver    *repository.TargetResolver
	contentRepo *repository.ContentRepository
	ratingRepo  *repository.RatingRepository
	reviewRepo  *repository.ReviewRepository
	listRepo    *repository.ListRepository
}

func NewContentService(
	resolver *repository.TargetResolver,
	contentRepo *repository.ContentRepository,
	ratingRepo *repository.RatingRepository,
	reviewRepo *repository.ReviewRepository,
	listRepo *repository.ListRepository,
) *ContentService {
	return &ContentService{
		resolver:    resolver,
		contentRepo: contentRepo,
		ratingRepo:  ratingRepo,
		reviewRepo:  reviewRepo,
		listRepo:    listRepo,
	}
}

// Detail 内容详情：平均分、viewer 的评分、评论（最新在前）。viewerID 为 0 表示未登录
func (s *ContentService) Detail(viewerID int64, ref model.TargetRef) (*dto.ContentDetail, error) {
	if err := ref.Within(model.ContentKinds...); err != nil {
		return nil, &ValidationError{Field: "content_type", Message: err.Error()}
	}

	target, ok, err := s.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrContentNotFound
	}

	detail := &dto.ContentDetail{ContentSummary: buildContentSummary(target)}
	switch c := target.(type) {
	case *model.Book:
		detail.ExternalID = c.GoogleBooksID
		detail.PageCount = c.PageCount
	case *model.Movie:
		detail.ExternalID = strconv.FormatInt(c.TMDBID, 10)
	}

	detail.AverageScore, err = s.ratingRepo.AverageScore(ref)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		rating, err := s.ratingRepo.GetByUserAndTarget(viewerID, ref)
		if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
		if rating != nil {
			score := rating.Score
			detail.UserScore = &score
		}
	}

	reviews, err := s.reviewRepo.ListByTarget(ref)
	if err != nil {
		return nil, err
	}
	detail.Reviews = make([]*dto.NestedReview, 0, len(reviews))
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, &dto.NestedReview{
			ID:        r.ID,
			User:      buildUserBrief(r.User),
			Text:      r.Text,
			CreatedAt: formatTime(r.CreatedAt),
		})
	}

	return detail, nil
}

// Search 按关键字搜索图书和电影，返回全部匹配，按标题排序
func (s *ContentService) Search(keyword string) ([]*dto.ContentSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, newValidationError("q", "search query must not be empty")
	}

	books, err := s.contentRepo.SearchBooks(keyword)
	if err != nil {
		return nil, err
	}
	movies, err := s.contentRepo.SearchMovies(keyword)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.ContentSummary, 0, len(books)+len(movies))
	for _, b := range books {
		results = append(results, buildContentSummary(b))
	}
	for _, m := range movies {
		results = append(results, buildContentSummary(m))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return strings.ToLower(results[i].Title) < strings.ToLower(results[j].Title)
	})
	return results, nil
}

// Discover 发现页：popular 按评论数+收录数排序，top_rated 按平均分排序。每类最多取 10 条
func (s *ContentService) Discover(listType string) ([]*dto.DiscoverItem, error) {
	if listType == "" {
		listType = DiscoverPopular
	}
	if listType != DiscoverPopular && listType != DiscoverTopRated {
		return nil, newValidationError("type", "type must be one of: %s, %s", DiscoverPopular, DiscoverTopRated)
	}

	var result []*dto.DiscoverItem
	for _, kind := range model.ContentKinds {
		items, err := s.discoverKind(kind, listType)
		if err != nil {
			return nil, err
		}
		result = append(result, items...)
	}
	if result == nil {
		result = []*dto.DiscoverItem{}
	}
	return result, nil
}

type contentStat struct {
	id        int64
	avg       *float64
	reviews   int64
	listItems int64
}

func (c *contentStat) popularity() int64 {
	return c.reviews + c.listItems
}

func (s *ContentService) discoverKind(kind model.TargetKind, listType string) ([]*dto.DiscoverItem, error) {
	avgs, err := s.ratingRepo.AverageScores(kind)
	if err != nil {
		return nil, err
	}
	reviewCounts, err := s.reviewRepo.CountsByTarget(kind)
	if err != nil {
		return nil, err
	}
	listCounts, err := s.listRepo.ItemCountsByTarget(kind)
	if err != nil {
		return nil, err
	}

	stats := make(map[int64]*contentStat)
	get := func(id int64) *contentStat {
		if st, ok := stats[id]; ok {
			return st
		}
		st := &contentStat{id: id}
		stats[id] = st
		return st
	}
	for id, avg := range avgs {
		avg := avg
		get(id).avg = &avg
	}
	for id, n := range reviewCounts {
		get(id).reviews = n
	}
	for id, n := range listCounts {
		get(id).listItems = n
	}

	ranked := make([]*contentStat, 0, len(stats))
	for _, st := range stats {
		if listType == DiscoverTopRated && st.avg == nil {
			continue
		}
		ranked = append(ranked, st)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if listType == DiscoverTopRated {
			if *a.avg != *b.avg {
				return *a.avg > *b.avg
			}
			if a.reviews != b.reviews {
				return a.reviews > b.reviews
			}
			return a.id > b.id
		}
		if a.popularity() != b.popularity() {
			return a.popularity() > b.popularity()
		}
		if avgOf(a) != avgOf(b) {
			return avgOf(a) > avgOf(b)
		}
		return a.id > b.id
	})
	if len(ranked) > discoverLimit {
		ranked = ranked[:discoverLimit]
	}

	// popular 不足时用最新内容补齐
	if listType == DiscoverPopular && len(ranked) < discoverLimit {
		exclude := make([]int64, 0, len(ranked))
		for _, st := range ranked {
			exclude = append(exclude, st.id)
		}
		ids, err := s.contentRepo.LatestIDs(kind, discoverLimit-len(ranked), exclude)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			ranked = append(ranked, get(id))
		}
	}

	return s.buildDiscoverItems(kind, ranked)
}

func (s *ContentService) buildDiscoverItems(kind model.TargetKind, ranked []*contentStat) ([]*dto.DiscoverItem, error) {
	ids := make([]int64, 0, len(ranked))
	for _, st := range ranked {
		ids = append(ids, st.id)
	}

	summaries := make(map[int64]*dto.ContentSummary, len(ids))
	switch kind {
	case model.KindBook:
		books, err := s.contentRepo.GetBooks(ids)
		if err != nil {
			return nil, err
		}
		for id, b := range books {
			summaries[id] = buildContentSummary(b)
		}
	case model.KindMovie:
		movies, err := s.contentRepo.GetMovies(ids)
		if err != nil {
			return nil, err
		}
		for id, m := range movies {
			summaries[id] = buildContentSummary(m)
		}
	}

	items := make([]*dto.DiscoverItem, 0, len(ranked))
	for _, st := range ranked {
		summary, ok := summaries[st.id]
		if !ok {
			// 聚合行引用的内容已不存在
			continue
		}
		items = append(items, &dto.DiscoverItem{
			ContentSummary:  summary,
			AverageScore:    st.avg,
			ReviewCount:     st.reviews,
			ListItemCount:   st.listItems,
			PopularityScore: st.popularity(),
		})
	}
	return items, nil
}

func avgOf(st *contentStat) float64 {
	if st.avg == nil {
		return 0
	}
	return *st.avg
}
