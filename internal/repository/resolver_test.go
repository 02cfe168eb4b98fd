package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/shelf_server/internal/model"
	"github.com/qs3c/shelf_server/internal/testutil"
)

func TestTargetResolver_Resolve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	resolver := NewTargetResolver(db)
	user := testutil.TestUser(t, db)
	friend := testutil.TestUser(t, db)
	book := testutil.TestBook(t, db)
	movie := testutil.TestMovie(t, db)
	rating := testutil.TestRating(t, db, user.ID, book.Ref(), 7)
	review := testutil.TestReview(t, db, user.ID, movie.Ref(), "text")
	list := testutil.TestList(t, db, user.ID, "Mine")
	item := &model.ListItem{ListID: list.ID, TargetKind: model.KindBook, TargetID: book.ID}
	require.NoError(t, db.Create(item).Error)
	follow := testutil.TestFollow(t, db, user.ID, friend.ID)

	refs := []model.TargetRef{
		book.Ref(), movie.Ref(), rating.Ref(), review.Ref(), item.Ref(), follow.Ref(),
	}
	for _, ref := range refs {
		t.Run(string(ref.Kind), func(t *testing.T) {
			target, ok, err := resolver.Resolve(ref)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, ref, target.Ref())
		})
	}

	target, _, err := resolver.Resolve(rating.Ref())
	require.NoError(t, err)
	require.NotNil(t, target.(*model.Rating).User)

	target, _, err = resolver.Resolve(item.Ref())
	require.NoError(t, err)
	assert.Equal(t, "Mine", target.(*model.ListItem).List.Name)
}

func TestTargetResolver_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	resolver := NewTargetResolver(db)

	target, ok, err := resolver.Resolve(model.TargetRef{Kind: model.KindReview, ID: 404})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, target)

	exists, err := resolver.Exists(model.TargetRef{Kind: model.KindBook, ID: 404})
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = resolver.Resolve(model.TargetRef{Kind: "podcast", ID: 1})
	assert.Error(t, err)
}

func TestContentRepository_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)
	testutil.TestBook(t, db, testutil.WithBookTitle("Moby Dick"))
	testutil.TestBook(t, db, testutil.WithBookTitle("Dickens Collected"))
	testutil.TestBook(t, db, testutil.WithBookTitle("Other"))
	testutil.TestMovie(t, db, testutil.WithMovieTitle("Moby"))

	books, err := repo.SearchBooks("DICK")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dickens Collected", books[0].Title)

	movies, err := repo.SearchMovies("moby")
	require.NoError(t, err)
	require.Len(t, movies, 1)

	ids, err := repo.LatestIDs(model.KindBook, 2, []int64{books[0].ID})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.NotContains(t, ids, books[0].ID)
}
