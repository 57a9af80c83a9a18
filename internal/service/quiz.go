// Package service holds request-independent domain logic that sits between
// handlers and repositories.
package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/repository"
)

// AnyCategory is the category id meaning "questions from every category".
const AnyCategory uint64 = 0

// PickStrategy selects which eligible question a quiz receives next.
type PickStrategy string

const (
	// PickRandom draws uniformly from the eligible questions.
	PickRandom PickStrategy = "random"
	// PickFirst returns the eligible question with the lowest id.
	PickFirst PickStrategy = "first"
)

// QuestionSource is the slice of the question repository the picker needs.
type QuestionSource interface {
	EligibleIDs(ctx context.Context, categoryID uint64, exclude []uint64) ([]uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.Question, error)
}

// QuizPicker chooses quiz questions.  It keeps no state between calls: the
// caller accumulates the ids already asked and sends them back each time.
type QuizPicker struct {
	questions QuestionSource
	strategy  PickStrategy
	intn      func(n int) int
}

// NewQuizPicker returns a picker using strategy; anything other than
// PickFirst means PickRandom.
func NewQuizPicker(questions QuestionSource, strategy PickStrategy) *QuizPicker {
	if strategy != PickFirst {
		strategy = PickRandom
	}
	return &QuizPicker{questions: questions, strategy: strategy, intn: rand.IntN}
}

// Next returns a question from categoryID (or any category for AnyCategory)
// whose id is not in previous.  A nil question with a nil error means the
// quiz is complete: no eligible question is left.  A question deleted between
// listing and loading is excluded and the eligible set listed again.
func (p *QuizPicker) Next(ctx context.Context, categoryID uint64, previous []uint64) (*model.Question, error) {
	exclude := append([]uint64(nil), previous...)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids, err := p.questions.EligibleIDs(ctx, categoryID, exclude)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		id := p.choose(ids)
		q, err := p.questions.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			exclude = append(exclude, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		return q, nil
	}
}

func (p *QuizPicker) choose(ids []uint64) uint64 {
	if p.strategy == PickFirst || len(ids) == 1 {
		return ids[0]
	}
	return ids[p.intn(len(ids))]
}
