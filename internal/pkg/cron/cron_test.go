package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/repository"
	"github.com/qs3c/shelf_server/internal/testutil"
)

func setupCronService(t *testing.T, batchSize int) (*Service, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc := NewService(repository.NewActivityRepository(db), 0, batchSize)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return svc, db, cleanup
}

// seedOrphans 一条有效动态加 n 条孤立动态
func seedOrphans(t *testing.T, db *gorm.DB, n int) {
	t.Helper()

	user := testutil.TestUser(t, db)
	book := testutil.TestBook(t, db)
	rating := testutil.TestRating(t, db, user.ID, book.Ref(), 8)
	testutil.TestActivity(t, db, user.ID, model.ActivityRating, rating.Ref())

	for i := 0; i < n; i++ {
		testutil.TestActivity(t, db, user.ID, model.ActivityReview,
			model.TargetRef{Kind: model.KindReview, ID: int64(1000 + i)})
	}
}

func TestNewService(t *testing.T) {
	svc := NewService(nil, time.Minute, 0)
	assert.NotNil(t, svc)
	assert.Equal(t, defaultBatchSize, svc.batchSize)
	assert.NotNil(t, svc.stopChan)
}

func TestService_PruneOrphans_DryRun(t *testing.T) {
	svc, db, cleanup := setupCronService(t, 0)
	defer cleanup()
	seedOrphans(t, db, 3)

	result, err := svc.PruneOrphans(true)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Found)
	assert.Equal(t, int64(0), result.Deleted)
	assert.Equal(t, int64(4), testutil.Count(t, db, &model.Activity{}, ""))
}

func TestService_PruneOrphans_Batched(t *testing.T) {
	svc, db, cleanup := setupCronService(t, 2)
	defer cleanup()
	seedOrphans(t, db, 5)

	result, err := svc.PruneOrphans(false)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Found)
	assert.Equal(t, int64(5), result.Deleted)

	// 有效动态保留
	assert.Equal(t, int64(1), testutil.Count(t, db, &model.Activity{}, ""))

	result, err = svc.PruneOrphans(false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Found)
}

func TestService_StartAndStop(t *testing.T) {
	svc, _, cleanup := setupCronService(t, 0)
	defer cleanup()

	// interval 为 0 时不启动
	svc.Start()
	svc.Stop()
	svc.Stop()

	running := NewService(nil, time.Hour, 0)
	running.Start()
	time.Sleep(10 * time.Millisecond)
	running.Stop()
}
