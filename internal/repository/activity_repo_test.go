package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/testutil"
)

func TestActivityRepository_Append_Dedup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewActivityRepository(db)
	user := testutil.TestUser(t, db)
	target := model.TargetRef{Kind: model.KindRating, ID: 42}

	appended, err := repo.Append(user.ID, model.ActivityRating, target)
	require.NoError(t, err)
	assert.True(t, appended)

	appended, err = repo.Append(user.ID, model.ActivityRating, target)
	require.NoError(t, err)
	assert.False(t, appended)

	exists, err := repo.ExistsForTarget(target)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(1), testutil.Count(t, db, &model.Activity{}, ""))
}

func TestActivityRepository_Append_InTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewActivityRepository(db)
	user := testutil.TestUser(t, db)
	target := model.TargetRef{Kind: model.KindFollow, ID: 7}

	// 重复追加只回滚保存点，外层事务继续
	err := NewTransactor(db).Transaction(func(tx *gorm.DB) error {
		activities := repo.WithTx(tx)
		if _, err := activities.Append(user.ID, model.ActivityFollow, target); err != nil {
			return err
		}
		appended, err := activities.Append(user.ID, model.ActivityFollow, target)
		assert.False(t, appended)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), testutil.Count(t, db, &model.Activity{}, ""))
}

func TestActivityRepository_ListByUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewActivityRepository(db)
	a := testutil.TestUser(t, db)
	b := testutil.TestUser(t, db)
	c := testutil.TestUser(t, db)

	first := testutil.TestActivity(t, db, a.ID, model.ActivityReview, model.TargetRef{Kind: model.KindReview, ID: 1})
	second := testutil.TestActivity(t, db, b.ID, model.ActivityReview, model.TargetRef{Kind: model.KindReview, ID: 2})
	testutil.TestActivity(t, db, c.ID, model.ActivityReview, model.TargetRef{Kind: model.KindReview, ID: 3})

	activities, total, err := repo.ListByUsers([]int64{a.ID, b.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, activities, 2)
	assert.Equal(t, second.ID, activities[0].ID)
	assert.Equal(t, first.ID, activities[1].ID)
	require.NotNil(t, activities[0].User)
	assert.Equal(t, b.Username, activities[0].User.Username)

	activities, total, err = repo.ListByUsers(nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, activities)
}

func TestActivityRepository_DeleteByTargets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewActivityRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestActivity(t, db, user.ID, model.ActivityListAdd, model.TargetRef{Kind: model.KindListItem, ID: 1})
	testutil.TestActivity(t, db, user.ID, model.ActivityListAdd, model.TargetRef{Kind: model.KindListItem, ID: 2})
	testutil.TestActivity(t, db, user.ID, model.ActivityFollow, model.TargetRef{Kind: model.KindFollow, ID: 1})

	require.NoError(t, repo.DeleteByTargets(model.KindListItem, []int64{1, 2}))
	require.NoError(t, repo.DeleteByTargets(model.KindListItem, nil))

	assert.Equal(t, int64(1), testutil.Count(t, db, &model.Activity{}, ""))
}

func TestActivityRepository_OrphanIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewActivityRepository(db)
	user := testutil.TestUser(t, db)
	friend := testutil.TestUser(t, db)
	book := testutil.TestBook(t, db)

	rating := testutil.TestRating(t, db, user.ID, book.Ref(), 5)
	follow := testutil.TestFollow(t, db, user.ID, friend.ID)
	live := testutil.TestActivity(t, db, user.ID, model.ActivityRating, rating.Ref())
	testutil.TestActivity(t, db, user.ID, model.ActivityFollow, follow.Ref())
	orphanReview := testutil.TestActivity(t, db, user.ID, model.ActivityReview, model.TargetRef{Kind: model.KindReview, ID: 999})

	require.NoError(t, db.Delete(&model.Follow{}, follow.ID).Error)
	var orphanFollow model.Activity
	require.NoError(t, db.Where("target_kind = ?", model.KindFollow).First(&orphanFollow).Error)

	ids, err := repo.OrphanIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{orphanReview.ID, orphanFollow.ID}, ids)

	deleted, err := repo.DeleteByIDs(ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining []model.Activity
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)
}
