package entities_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whispr/internal/diary/domain/entities"
)

func strPtr(s string) *string { return &s }

func TestNewEntryInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input entities.NewEntryInput
		field string
	}{
		{"empty title", entities.NewEntryInput{Title: "", Content: "c"}, "title"},
		{"whitespace title", entities.NewEntryInput{Title: "  \t", Content: "c"}, "title"},
		{"empty content", entities.NewEntryInput{Title: "t", Content: ""}, "content"},
		{"image without url", entities.NewEntryInput{Title: "t", Content: "c",
			Images: []entities.ImageRef{{URL: "u", StorageID: "s"}, {StorageID: "s"}}}, "images[1].url"},
		{"image without storage id", entities.NewEntryInput{Title: "t", Content: "c",
			Images: []entities.ImageRef{{URL: "u"}}}, "images[0].storage_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			require.ErrorIs(t, err, entities.ErrValidation)

			var vErr *entities.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}

	t.Run("valid input", func(t *testing.T) {
		in := entities.NewEntryInput{Title: "t", Content: "c",
			Images: []entities.ImageRef{{URL: "u", StorageID: "s"}}}
		assert.NoError(t, in.Validate())
	})
}

func TestNewDiaryEntry(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("defaults occurred at and stamps uploader", func(t *testing.T) {
		e := entities.NewDiaryEntry("u1", entities.NewEntryInput{
			Title:   "Morning",
			Content: "Ran 5k",
			Images: []entities.ImageRef{
				{URL: "a", StorageID: "sa"},
				{URL: "b", StorageID: "sb", UploadedBy: "u1"},
			},
		}, now)

		assert.Equal(t, "u1", e.OwnerID)
		assert.Equal(t, now, e.OccurredAt)
		require.Len(t, e.Images, 2)
		assert.Equal(t, "u1", e.Images[0].UploadedBy)
		assert.Equal(t, "sa", e.Images[0].StorageID)
		assert.Equal(t, "b", e.Images[1].URL)
	})

	t.Run("explicit occurred at is normalized to utc", func(t *testing.T) {
		at := time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("X", 3*3600))
		e := entities.NewDiaryEntry("u1", entities.NewEntryInput{Title: "t", Content: "c", OccurredAt: &at}, now)

		assert.True(t, at.Equal(e.OccurredAt))
		assert.Equal(t, time.UTC, e.OccurredAt.Location())
		assert.Equal(t, "2023-12-31", e.Day().String())
	})

	t.Run("images are never nil", func(t *testing.T) {
		e := entities.NewDiaryEntry("u1", entities.NewEntryInput{Title: "t", Content: "c"}, now)
		assert.NotNil(t, e.Images)
		assert.Empty(t, e.Images)
	})
}

func TestEntryPatch(t *testing.T) {
	base := func() *entities.DiaryEntry {
		return &entities.DiaryEntry{ID: "e1", OwnerID: "u1", Title: "A", Content: "B", Mood: "calm"}
	}

	t.Run("only provided fields change", func(t *testing.T) {
		e := base()
		entities.EntryPatch{Title: strPtr("A2")}.Apply(e)

		assert.Equal(t, "A2", e.Title)
		assert.Equal(t, "B", e.Content)
		assert.Equal(t, "calm", e.Mood)
	})

	t.Run("empty strings keep prior values", func(t *testing.T) {
		e := base()
		p := entities.EntryPatch{Title: strPtr(""), Content: strPtr(""), Mood: strPtr("")}
		assert.True(t, p.IsEmpty())
		p.Apply(e)

		assert.Equal(t, base(), e)
	})

	t.Run("whitespace only values keep prior values", func(t *testing.T) {
		e := base()
		p := entities.EntryPatch{Title: strPtr("   "), Content: strPtr("\t\n"), Mood: strPtr(" ")}
		assert.True(t, p.IsEmpty())
		p.Apply(e)

		assert.Equal(t, base(), e)
	})

	t.Run("owner is never touched", func(t *testing.T) {
		e := base()
		entities.EntryPatch{Title: strPtr("x"), Content: strPtr("y"), Mood: strPtr("z")}.Apply(e)
		assert.Equal(t, "u1", e.OwnerID)
		assert.True(t, e.IsOwnedBy("u1"))
		assert.False(t, e.IsOwnedBy("u2"))
	})
}
