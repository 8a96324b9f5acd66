package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

func TestEnsureCategory(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "creates category with default display metadata",
			check: func(t *testing.T, b *Backend) {
				ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
				fixedClock(b, ts)

				cat, created, err := b.EnsureCategory("Math")
				require.NoError(t, err)
				assert.True(t, created)
				assert.NotEmpty(t, cat.ID)
				assert.Equal(t, "Math", cat.Name)
				assert.Equal(t, types.DefaultCategoryIcon, cat.Icon)
				assert.Equal(t, types.DefaultCategoryColor, cat.Color)
				assert.Equal(t, "Math题库", cat.Description)

				got, err := b.GetCategory("Math")
				require.NoError(t, err)
				assert.Equal(t, cat.ID, got.ID)
				assert.True(t, got.CreatedAt.Equal(ts))
				assert.True(t, got.UpdatedAt.Equal(ts))
			},
		},
		{
			name: "repeated lookups return the same identifier",
			check: func(t *testing.T, b *Backend) {
				first, created, err := b.EnsureCategory("Math")
				require.NoError(t, err)
				require.True(t, created)

				for i := 0; i < 3; i++ {
					again, created, err := b.EnsureCategory("Math")
					require.NoError(t, err)
					assert.False(t, created)
					assert.Equal(t, first.ID, again.ID)
				}
			},
		},
		{
			name: "names match exactly",
			check: func(t *testing.T, b *Backend) {
				lower, _, err := b.EnsureCategory("math")
				require.NoError(t, err)
				upper, created, err := b.EnsureCategory("Math")
				require.NoError(t, err)
				assert.True(t, created)
				assert.NotEqual(t, lower.ID, upper.ID)
			},
		},
		{
			name: "empty name returns ErrInvalidName",
			check: func(t *testing.T, b *Backend) {
				_, _, err := b.EnsureCategory("")
				assert.ErrorIs(t, err, types.ErrInvalidName)
			},
		},
		{
			name: "missing category returns ErrNotFound",
			check: func(t *testing.T, b *Backend) {
				_, err := b.GetCategory("History")
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "configured style is applied",
			check: func(t *testing.T, b *Backend) {
				b.style = types.CategoryStyle{Icon: "🧪", Description: "%s questions"}.WithDefaults()
				cat, _, err := b.EnsureCategory("Chemistry")
				require.NoError(t, err)
				assert.Equal(t, "🧪", cat.Icon)
				assert.Equal(t, types.DefaultCategoryColor, cat.Color)
				assert.Equal(t, "Chemistry questions", cat.Description)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}

func TestEnsureChapter(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "creates then reuses a chapter",
			check: func(t *testing.T, b *Backend) {
				ch, created, err := b.EnsureChapter("Math", "Algebra")
				require.NoError(t, err)
				assert.True(t, created)
				assert.Equal(t, "Math", ch.Category)
				assert.Equal(t, "Algebra", ch.Name)

				again, created, err := b.EnsureChapter("Math", "Algebra")
				require.NoError(t, err)
				assert.False(t, created)
				assert.Equal(t, ch.ID, again.ID)
			},
		},
		{
			name: "same chapter name in another category is a new chapter",
			check: func(t *testing.T, b *Backend) {
				a, _, err := b.EnsureChapter("Math", "Chapter 1")
				require.NoError(t, err)
				p, created, err := b.EnsureChapter("Physics", "Chapter 1")
				require.NoError(t, err)
				assert.True(t, created)
				assert.NotEqual(t, a.ID, p.ID)
			},
		},
		{
			name: "chapter does not require the category row",
			check: func(t *testing.T, b *Backend) {
				_, _, err := b.EnsureChapter("Unfiled", "Misc")
				require.NoError(t, err)
				_, err = b.GetCategory("Unfiled")
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "empty names return ErrInvalidName",
			check: func(t *testing.T, b *Backend) {
				_, _, err := b.EnsureChapter("", "Algebra")
				assert.ErrorIs(t, err, types.ErrInvalidName)
				_, _, err = b.EnsureChapter("Math", "")
				assert.ErrorIs(t, err, types.ErrInvalidName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}
