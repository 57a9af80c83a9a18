package model

// Category labels a group of trivia questions.  Categories are seeded and
// never changed through the API.
type Category struct {
	ID   uint64 `db:"id" json:"id"`
	Type string `db:"type" json:"type"`
}

func (*Category) TableName() string { return "categories" }
func (*Category) Columns() []string { return []string{"type"} }
func (c *Category) Values() []any   { return []any{c.Type} }
func (c *Category) PK() uint64      { return c.ID }
func (c *Category) SetPK(id uint64) { c.ID = id }

// CategoryMap renders categories as the {id: type} object the trivia
// frontend expects.
func CategoryMap(cats []Category) map[uint64]string {
	out := make(map[uint64]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Type
	}
	return out
}
