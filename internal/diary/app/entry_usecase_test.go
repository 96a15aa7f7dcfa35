package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whispr/internal/diary/app"
	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/ports/api"
	"whispr/pkg/logger"
)

const (
	userA = "11111111-1111-1111-1111-111111111111"
	userB = "22222222-2222-2222-2222-222222222222"
)

var (
	errConnReset = errors.New("connection reset by peer")
	fixedNow     = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func mustDay(t *testing.T, s string) entities.CalendarDay {
	t.Helper()
	d, err := entities.ParseCalendarDay(s)
	require.NoError(t, err)
	return d
}

func newService(t *testing.T, opts ...app.EntryOption) (api.EntryUseCase, *memoryEntryRepository) {
	t.Helper()
	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))

	repo := newMemoryEntryRepository()
	opts = append([]app.EntryOption{app.WithClock(func() time.Time { return fixedNow })}, opts...)
	return app.NewEntryUseCase(repo, opts...), repo
}

func create(t *testing.T, svc api.EntryUseCase, owner string, at time.Time, title string) *entities.DiaryEntry {
	t.Helper()
	e, err := svc.Create(context.Background(), owner, entities.NewEntryInput{
		Title:      title,
		Content:    "content of " + title,
		OccurredAt: timePtr(at),
	})
	require.NoError(t, err)
	return e
}

func titles(entries []*entities.DiaryEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists entry with defaults", func(t *testing.T) {
		svc, repo := newService(t)

		e, err := svc.Create(ctx, userA, entities.NewEntryInput{
			Title:   "Morning",
			Content: "Ran 5k",
			Mood:    "energetic",
			Images:  []entities.ImageRef{{URL: "https://cdn/x.jpg", StorageID: "diary_images/x.jpg"}},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, e.ID)
		assert.Equal(t, userA, e.OwnerID)
		assert.Equal(t, fixedNow, e.OccurredAt)
		assert.Equal(t, "energetic", e.Mood)
		require.Len(t, e.Images, 1)
		assert.Equal(t, userA, e.Images[0].UploadedBy)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("empty content is rejected and nothing is stored", func(t *testing.T) {
		svc, repo := newService(t)

		_, err := svc.Create(ctx, userA, entities.NewEntryInput{Title: "t", Content: ""})

		require.ErrorIs(t, err, entities.ErrValidation)
		var vErr *entities.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "content", vErr.Field)
		assert.Zero(t, repo.count())
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		svc, repo := newService(t)

		_, err := svc.Create(ctx, userA, entities.NewEntryInput{Title: "   ", Content: "c"})

		require.ErrorIs(t, err, entities.ErrValidation)
		assert.Zero(t, repo.count())
	})

	t.Run("missing caller", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(ctx, "", entities.NewEntryInput{Title: "t", Content: "c"})
		require.ErrorIs(t, err, entities.ErrUnauthenticated)
	})

	t.Run("store failure is surfaced as storage unavailable", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.DiaryEntry")).
			Return(nil, errors.Join(entities.ErrStorageUnavailable, errConnReset))

		svc := app.NewEntryUseCase(repo)
		_, err := svc.Create(ctx, userA, entities.NewEntryInput{Title: "t", Content: "c"})

		require.ErrorIs(t, err, entities.ErrStorageUnavailable)
		repo.AssertExpectations(t)
	})

	t.Run("value rejected by the store is a validation error", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.DiaryEntry")).
			Return(nil, entities.NewValidationError("mood", "rejected by storage constraints"))

		_, err := app.NewEntryUseCase(repo).Create(ctx, userA, entities.NewEntryInput{Title: "t", Content: "c", Mood: "m"})

		require.ErrorIs(t, err, entities.ErrValidation)
		assert.NotErrorIs(t, err, entities.ErrStorageUnavailable)
		var vErr *entities.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "mood", vErr.Field)
	})

	t.Run("long mood is accepted", func(t *testing.T) {
		svc, _ := newService(t)
		mood := strings.Repeat("x", 65)

		e, err := svc.Create(ctx, userA, entities.NewEntryInput{Title: "t", Content: "c", Mood: mood})
		require.NoError(t, err)
		assert.Equal(t, mood, e.Mood)
	})

	t.Run("write survives caller cancellation", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		repo.On("Create", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
			mock.AnythingOfType("*entities.DiaryEntry")).
			Return(&entities.DiaryEntry{ID: "e1", OwnerID: userA, OccurredAt: fixedNow, Images: []entities.ImageRef{}}, nil)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := app.NewEntryUseCase(repo).Create(cctx, userA, entities.NewEntryInput{Title: "t", Content: "c"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestListOwnershipIsolation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a1 := create(t, svc, userA, fixedNow.Add(-time.Hour), "a1")
	a2 := create(t, svc, userA, fixedNow, "a2")
	create(t, svc, userB, fixedNow, "b1")

	listA, err := svc.List(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, []string{a2.Title, a1.Title}, titles(listA))

	listB, err := svc.List(ctx, userB)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, titles(listB))

	again, err := svc.List(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, titles(listA), titles(again))

	empty, err := svc.List(ctx, "33333333-3333-3333-3333-333333333333")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFindByCalendarDay(t *testing.T) {
	ctx := context.Background()

	t.Run("boundary near midnight in reference zone", func(t *testing.T) {
		svc, _ := newService(t)
		e := create(t, svc, userA, time.Date(2024, 3, 15, 23, 50, 0, 0, time.UTC), "late")

		got, err := svc.FindByCalendarDay(ctx, userA, mustDay(t, "2024-03-15"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, e.ID, got[0].ID)
	})

	t.Run("offset timestamps are bucketed by utc day", func(t *testing.T) {
		svc, _ := newService(t)
		est := time.FixedZone("EST", -5*3600)
		e := create(t, svc, userA, time.Date(2024, 3, 15, 23, 50, 0, 0, est), "evening")

		got, err := svc.FindByCalendarDay(ctx, userA, mustDay(t, "2024-03-15"))
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = svc.FindByCalendarDay(ctx, userA, mustDay(t, "2024-03-16"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, e.ID, got[0].ID)
		assert.Equal(t, time.Date(2024, 3, 16, 4, 50, 0, 0, time.UTC), got[0].OccurredAt)
	})

	t.Run("multiple matches are most recent first", func(t *testing.T) {
		svc, _ := newService(t)
		create(t, svc, userA, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), "morning")
		create(t, svc, userA, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC), "evening")
		create(t, svc, userA, time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC), "yesterday")

		got, err := svc.FindByCalendarDay(ctx, userA, mustDay(t, "2024-03-15"))
		require.NoError(t, err)
		assert.Equal(t, []string{"evening", "morning"}, titles(got))
	})

	t.Run("round trip and no false match", func(t *testing.T) {
		svc, _ := newService(t)
		instants := []time.Time{
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
			time.Date(2023, 12, 31, 12, 0, 0, 0, time.FixedZone("X", 14*3600)),
			time.Date(2024, 7, 4, 1, 0, 0, 0, time.FixedZone("Y", -11*3600)),
		}
		for i, at := range instants {
			e := create(t, svc, userA, at, "e"+string(rune('0'+i)))
			day := entities.DayOf(at)

			got, err := svc.FindByCalendarDay(ctx, userA, day)
			require.NoError(t, err)
			assert.Contains(t, ids(got), e.ID)

			for _, other := range []entities.CalendarDay{
				entities.DayOf(day.Time().AddDate(0, 0, -1)),
				entities.DayOf(day.Time().AddDate(0, 0, 1)),
			} {
				got, err := svc.FindByCalendarDay(ctx, userA, other)
				require.NoError(t, err)
				assert.NotContains(t, ids(got), e.ID)
			}
		}
	})

	t.Run("only the caller's entries", func(t *testing.T) {
		svc, _ := newService(t)
		create(t, svc, userB, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), "foreign")

		got, err := svc.FindByCalendarDay(ctx, userA, mustDay(t, "2024-03-15"))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		repo.On("FindByOwnerAndDay", mock.Anything, userA, mustDay(t, "2024-03-15")).
			Return(nil, entities.ErrStorageUnavailable)

		_, err := app.NewEntryUseCase(repo).FindByCalendarDay(ctx, userA, mustDay(t, "2024-03-15"))
		require.ErrorIs(t, err, entities.ErrStorageUnavailable)
	})
}

func ids(entries []*entities.DiaryEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestDayCache(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("second lookup is served from cache", func(t *testing.T) {
		c := newMemoryCache()
		svc, repo := newService(t, app.WithDayCache(c, time.Minute))
		e := create(t, svc, userA, day, "cached")

		first, err := svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		assert.True(t, c.has(app.DayCacheKey(userA, entities.DayOf(day))))

		// удаляем напрямую из хранилища, кэш продолжает отдавать прежний результат
		require.NoError(t, repo.Delete(ctx, e.ID, userA))

		second, err := svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(second))
		assert.Equal(t, first[0].OccurredAt, second[0].OccurredAt)
		assert.NotNil(t, second[0].Images)
	})

	t.Run("mutations invalidate the day bucket", func(t *testing.T) {
		c := newMemoryCache()
		svc, _ := newService(t, app.WithDayCache(c, time.Minute))
		key := app.DayCacheKey(userA, entities.DayOf(day))

		e := create(t, svc, userA, day, "v1")
		_, err := svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		require.True(t, c.has(key))

		_, err = svc.Update(ctx, userA, e.ID, entities.EntryPatch{Title: strPtr("v2")})
		require.NoError(t, err)
		assert.False(t, c.has(key))

		got, err := svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		assert.Equal(t, []string{"v2"}, titles(got))

		_, err = svc.Delete(ctx, userA, e.ID)
		require.NoError(t, err)
		assert.False(t, c.has(key))

		got, err = svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		assert.Empty(t, got)

		create(t, svc, userA, day, "v3")
		assert.False(t, c.has(key))
	})

	t.Run("cache failures fall back to the store", func(t *testing.T) {
		c := newMemoryCache()
		c.fail = errors.New("redis down")
		svc, _ := newService(t, app.WithDayCache(c, time.Minute))
		e := create(t, svc, userA, day, "resilient")

		got, err := svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		assert.Equal(t, []string{e.ID}, ids(got))
		assert.Zero(t, c.sets)
	})

	t.Run("corrupt cache value is ignored", func(t *testing.T) {
		c := newMemoryCache()
		svc, _ := newService(t, app.WithDayCache(c, time.Minute))
		e := create(t, svc, userA, day, "fresh")
		require.NoError(t, c.Set(ctx, app.DayCacheKey(userA, entities.DayOf(day)), "{not json", 0))

		got, err := svc.FindByCalendarDay(ctx, userA, entities.DayOf(day))
		require.NoError(t, err)
		assert.Equal(t, []string{e.ID}, ids(got))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merge keeps untouched fields", func(t *testing.T) {
		svc, _ := newService(t)
		e := create(t, svc, userA, fixedNow, "Title")

		updated, err := svc.Update(ctx, userA, e.ID, entities.EntryPatch{Mood: strPtr("calm")})
		require.NoError(t, err)

		assert.Equal(t, "calm", updated.Mood)
		assert.Equal(t, e.Title, updated.Title)
		assert.Equal(t, e.Content, updated.Content)
		assert.Equal(t, e.OccurredAt, updated.OccurredAt)
	})

	t.Run("empty strings do not clear fields", func(t *testing.T) {
		svc, _ := newService(t)
		e := create(t, svc, userA, fixedNow, "Title")

		updated, err := svc.Update(ctx, userA, e.ID, entities.EntryPatch{Title: strPtr(""), Content: strPtr("new")})
		require.NoError(t, err)
		assert.Equal(t, "Title", updated.Title)
		assert.Equal(t, "new", updated.Content)
	})

	t.Run("whitespace only fields are ignored", func(t *testing.T) {
		svc, _ := newService(t)
		e := create(t, svc, userA, fixedNow, "Title")

		updated, err := svc.Update(ctx, userA, e.ID, entities.EntryPatch{Title: strPtr("   "), Content: strPtr("new")})
		require.NoError(t, err)
		assert.Equal(t, "Title", updated.Title)
		assert.Equal(t, "new", updated.Content)
	})

	t.Run("whitespace only patch never reaches the store", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		stored := &entities.DiaryEntry{ID: userB, OwnerID: userA, Title: "Title", Content: "Content", Images: []entities.ImageRef{}}
		repo.On("FindByID", mock.Anything, userB).Return(stored, nil)

		got, err := app.NewEntryUseCase(repo).Update(ctx, userA, userB, entities.EntryPatch{Title: strPtr("   ")})
		require.NoError(t, err)
		assert.Equal(t, "Title", got.Title)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("non owner is rejected and entry is unchanged", func(t *testing.T) {
		svc, _ := newService(t)
		e := create(t, svc, userA, fixedNow, "mine")

		_, err := svc.Update(ctx, userB, e.ID, entities.EntryPatch{Title: strPtr("x")})
		require.ErrorIs(t, err, entities.ErrNotEntryOwner)

		list, err := svc.List(ctx, userA)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "mine", list[0].Title)
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Update(ctx, userA, "33333333-3333-3333-3333-333333333333", entities.EntryPatch{Title: strPtr("x")})
		require.ErrorIs(t, err, entities.ErrEntryNotFound)

		_, err = svc.Update(ctx, userA, "not-a-uuid", entities.EntryPatch{Title: strPtr("x")})
		require.ErrorIs(t, err, entities.ErrEntryNotFound)
	})

	t.Run("empty patch does not write", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		stored := &entities.DiaryEntry{ID: userB, OwnerID: userA, Title: "t", Content: "c", Images: []entities.ImageRef{}}
		repo.On("FindByID", mock.Anything, userB).Return(stored, nil)

		got, err := app.NewEntryUseCase(repo).Update(ctx, userA, userB, entities.EntryPatch{})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes and gets images back", func(t *testing.T) {
		svc, repo := newService(t)
		e, err := svc.Create(ctx, userA, entities.NewEntryInput{
			Title: "t", Content: "c",
			Images: []entities.ImageRef{{URL: "u", StorageID: "k1"}},
		})
		require.NoError(t, err)

		deleted, err := svc.Delete(ctx, userA, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, deleted.ID)
		assert.Equal(t, "k1", deleted.Images[0].StorageID)
		assert.Zero(t, repo.count())

		_, err = svc.Delete(ctx, userA, e.ID)
		require.ErrorIs(t, err, entities.ErrEntryNotFound)
	})

	t.Run("non owner is rejected and entry survives", func(t *testing.T) {
		svc, repo := newService(t)
		e := create(t, svc, userA, fixedNow, "mine")

		_, err := svc.Delete(ctx, userB, e.ID)
		require.ErrorIs(t, err, entities.ErrNotEntryOwner)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("store failure on delete", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))
		repo := new(mockEntryRepository)
		stored := &entities.DiaryEntry{ID: userB, OwnerID: userA, OccurredAt: fixedNow, Images: []entities.ImageRef{}}
		repo.On("FindByID", mock.Anything, userB).Return(stored, nil)
		repo.On("Delete", mock.Anything, userB, userA).Return(entities.ErrStorageUnavailable)

		_, err := app.NewEntryUseCase(repo).Delete(ctx, userA, userB)
		require.ErrorIs(t, err, entities.ErrStorageUnavailable)
		repo.AssertExpectations(t)
	})
}
