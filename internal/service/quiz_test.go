package service

import (
	"context"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/repository"
)

type memQuestions struct {
	rows    []model.Question
	missing map[uint64]bool // listed but gone by the time they are loaded
}

func (m *memQuestions) EligibleIDs(_ context.Context, categoryID uint64, exclude []uint64) ([]uint64, error) {
	var ids []uint64
	for _, q := range m.rows {
		if categoryID != AnyCategory && q.CategoryID != categoryID {
			continue
		}
		if slices.Contains(exclude, q.ID) {
			continue
		}
		ids = append(ids, q.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memQuestions) GetByID(_ context.Context, id uint64) (*model.Question, error) {
	if m.missing[id] {
		return nil, repository.ErrNotFound
	}
	for _, q := range m.rows {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, repository.ErrNotFound
}

func bank() *memQuestions {
	return &memQuestions{rows: []model.Question{
		{ID: 1, CategoryID: 1}, {ID: 2, CategoryID: 2}, {ID: 3, CategoryID: 1},
		{ID: 4, CategoryID: 2}, {ID: 5, CategoryID: 1},
	}}
}

func TestQuizPickerFirstReturnsLowestEligible(t *testing.T) {
	p := NewQuizPicker(bank(), PickFirst)

	q, err := p.Next(context.Background(), 1, []uint64{1})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, uint64(3), q.ID)
}

func TestQuizPickerNeverRepeatsAndCompletes(t *testing.T) {
	for _, strategy := range []PickStrategy{PickFirst, PickRandom} {
		t.Run(string(strategy), func(t *testing.T) {
			p := NewQuizPicker(bank(), strategy)
			ctx := context.Background()

			var previous []uint64
			for i := 0; i < 3; i++ {
				q, err := p.Next(ctx, 1, previous)
				require.NoError(t, err)
				require.NotNil(t, q)
				assert.NotContains(t, previous, q.ID)
				assert.Equal(t, uint64(1), q.CategoryID)
				previous = append(previous, q.ID)
			}

			q, err := p.Next(ctx, 1, previous)
			require.NoError(t, err)
			assert.Nil(t, q, "category exhausted")
		})
	}
}

func TestQuizPickerAnyCategory(t *testing.T) {
	p := NewQuizPicker(bank(), PickFirst)

	q, err := p.Next(context.Background(), AnyCategory, []uint64{1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), q.ID)
}

func TestQuizPickerRandomUsesDraw(t *testing.T) {
	p := NewQuizPicker(bank(), PickRandom)
	p.intn = func(n int) int { return n - 1 }

	q, err := p.Next(context.Background(), AnyCategory, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), q.ID)
}

func TestQuizPickerSkipsQuestionDeletedMidPick(t *testing.T) {
	src := bank()
	src.missing = map[uint64]bool{1: true}
	p := NewQuizPicker(src, PickFirst)

	q, err := p.Next(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), q.ID)
}

func TestQuizPickerKeepsLookingPastManyDeletions(t *testing.T) {
	src := &memQuestions{missing: map[uint64]bool{}}
	for id := uint64(1); id <= 10; id++ {
		src.rows = append(src.rows, model.Question{ID: id, CategoryID: 1})
		if id < 10 {
			src.missing[id] = true
		}
	}
	p := NewQuizPicker(src, PickFirst)

	q, err := p.Next(context.Background(), 1, nil)
	require.NoError(t, err)
	require.NotNil(t, q, "a live question remains")
	assert.Equal(t, uint64(10), q.ID)

	src.missing[10] = true
	q, err = p.Next(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQuizPickerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQuizPicker(bank(), PickFirst).Next(ctx, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewQuizPickerDefaultsToRandom(t *testing.T) {
	assert.Equal(t, PickRandom, NewQuizPicker(bank(), "shuffle").strategy)
}
