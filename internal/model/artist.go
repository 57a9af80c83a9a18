package model

// Artist performs shows at venues.  It mirrors Venue without an address.
type Artist struct {
	ID           uint64 `db:"id"`
	Name         string `db:"name"`
	City         string `db:"city"`
	State        string `db:"state"`
	Phone        string `db:"phone"`
	ImageLink    string `db:"image_link"`
	FacebookLink string `db:"facebook_link"`
	Genres       string `db:"genres"`
}

func (*Artist) TableName() string { return "artists" }

func (*Artist) Columns() []string {
	return []string{"name", "city", "state", "phone", "image_link", "facebook_link", "genres"}
}

func (a *Artist) Values() []any {
	return []any{a.Name, a.City, a.State, a.Phone, a.ImageLink, a.FacebookLink, a.Genres}
}

func (a *Artist) PK() uint64      { return a.ID }
func (a *Artist) SetPK(id uint64) { a.ID = id }
