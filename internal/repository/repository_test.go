package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/testutil"
)

func TestVenueDeleteCascadesToShows(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := &model.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"}
	other := &model.Venue{Name: "Park Square", City: "San Francisco", State: "CA"}
	a := &model.Artist{Name: "Guns N Petals"}
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, venues.Create(ctx, other))
	require.NoError(t, artists.Create(ctx, a))

	at := time.Date(2030, 5, 21, 21, 30, 0, 0, time.UTC)
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, ShowTime: at}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, ShowTime: at.Add(time.Hour)}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: other.ID, ShowTime: at}))

	require.NoError(t, venues.Delete(ctx, v.ID))

	showRows := NewTable[model.Show](db)
	n, err := showRows.Count(ctx, "venue_id = ?", v.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = showRows.Count(ctx, "venue_id = ?", other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = venues.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, venues.Delete(ctx, v.ID), ErrNotFound)
}

func TestArtistDeleteCascadesToShows(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := &model.Venue{Name: "Venue"}
	a := &model.Artist{Name: "Artist"}
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, a))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, ShowTime: time.Now()}))

	require.NoError(t, artists.Delete(ctx, a.ID))
	listings, err := shows.ForVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestShowCreateRejectsUnknownReferences(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := &model.Venue{Name: "Venue"}
	a := &model.Artist{Name: "Artist"}
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, a))

	err := shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID + 100, ShowTime: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidReference)
	err = shows.Create(ctx, &model.Show{ArtistID: a.ID + 100, VenueID: v.ID, ShowTime: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidReference)

	all, err := shows.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShowListingsAndUpcomingCounts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := &model.Venue{Name: "Hall", ImageLink: "v.png"}
	a := &model.Artist{Name: "Band", ImageLink: "a.png"}
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, a))

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, ShowTime: future}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, ShowTime: past}))

	listings, err := shows.ForVenue(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.True(t, listings[0].ShowTime.Equal(past), "ordered by time")
	assert.Equal(t, "Band", listings[0].ArtistName)
	assert.Equal(t, "a.png", listings[0].ArtistImageLink)
	assert.Equal(t, "Hall", listings[0].VenueName)
	assert.False(t, listings[0].Upcoming(now))
	assert.True(t, listings[1].Upcoming(now))

	counts, err := venues.UpcomingShowCounts(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[v.ID])
	counts, err = artists.UpcomingShowCounts(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[a.ID])
}

func TestVenueListByArea(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewVenueRepo(db)
	for _, v := range []model.Venue{
		{Name: "The Musical Hop", City: "San Francisco", State: "CA"},
		{Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
		{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"},
	} {
		v := v
		require.NoError(t, repo.Create(ctx, &v))
	}

	areas, err := repo.ListByArea(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "San Francisco", areas[0].City)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, "Park Square Live Music & Coffee", areas[0].Venues[0].Name)
	assert.Equal(t, "New York", areas[1].City)
}

func TestQuestionCreateNeedsCategory(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewQuestionRepo(db)

	err := repo.Create(ctx, &model.Question{Question: "Q", Answer: "A", CategoryID: 999, Difficulty: 1})
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, _, err = repo.ListPage(ctx, NewPage(1, 10))
	assert.ErrorIs(t, err, ErrNotFound, "nothing was written")
}

func TestQuestionEligibleIDs(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	seedQuestions(t, db, 9) // category = i%3+1
	repo := NewQuestionRepo(db)

	all, err := repo.EligibleIDs(ctx, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	inCat, err := repo.EligibleIDs(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, inCat, 3)

	rest, err := repo.EligibleIDs(ctx, 2, inCat[:2])
	require.NoError(t, err)
	assert.Equal(t, inCat[2:], rest)

	none, err := repo.EligibleIDs(ctx, 2, inCat)
	require.NoError(t, err)
	assert.Empty(t, none)

}

func TestQuestionSearchAndCategories(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	questions, categories := NewQuestionRepo(db), NewCategoryRepo(db)

	require.NoError(t, questions.Create(ctx, &model.Question{Question: "What is the boiling point of water?", Answer: "100C", CategoryID: 1, Difficulty: 1}))
	require.NoError(t, questions.Create(ctx, &model.Question{Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", CategoryID: 2, Difficulty: 2}))

	found, n, err := questions.Search(ctx, "WATER")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	cats, err := categories.ForQuestions(ctx, found)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Science", cats[0].Type)

	ref, err := categories.Referenced(ctx)
	require.NoError(t, err)
	assert.Len(t, ref, 2)

	all, err := categories.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestDrinkPatch(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewDrinkRepo(db)

	d := &model.Drink{Title: "Water", Recipe: `[{"name":"water","color":"blue","parts":1}]`}
	require.NoError(t, repo.Create(ctx, d))
	require.NoError(t, repo.Create(ctx, &model.Drink{Title: "Tea", Recipe: "[]"}))

	got, err := repo.Patch(ctx, d.ID, func(d *model.Drink) error {
		d.Title = "Sparkling Water"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Sparkling Water", got.Title)
	assert.Contains(t, got.Recipe, "blue", "untouched fields survive")

	_, err = repo.Patch(ctx, d.ID, func(d *model.Drink) error {
		d.Title = "Tea"
		return nil
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = repo.Patch(ctx, 999, func(*model.Drink) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}
