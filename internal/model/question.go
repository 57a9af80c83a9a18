package model

// Question is a trivia question.  Questions are created and deleted but
// never edited in place.  The JSON shape matches what the quiz frontend
// reads: the category id is exposed as "category".
type Question struct {
	ID         uint64 `db:"id" json:"id"`
	Question   string `db:"question" json:"question"`
	Answer     string `db:"answer" json:"answer"`
	CategoryID uint64 `db:"category_id" json:"category"`
	Difficulty int    `db:"difficulty" json:"difficulty"`
}

func (*Question) TableName() string { return "questions" }

func (*Question) Columns() []string {
	return []string{"question", "answer", "category_id", "difficulty"}
}

func (q *Question) Values() []any {
	return []any{q.Question, q.Answer, q.CategoryID, q.Difficulty}
}

func (q *Question) PK() uint64      { return q.ID }
func (q *Question) SetPK(id uint64) { q.ID = id }
