package model

// Venue is a place that hosts shows.  Genres is stored as a single
// space-delimited string; use SplitGenres to present it as a list.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name, searched case-insensitively.
//	City, State  – used to group venues into areas.
//	Address      – street address.
//	Phone        – free-form phone number.
//	ImageLink    – URL of the venue picture.
//	FacebookLink – URL of the venue page.
//	Genres       – space-delimited genre list.
type Venue struct {
	ID           uint64 `db:"id"`
	Name         string `db:"name"`
	City         string `db:"city"`
	State        string `db:"state"`
	Address      string `db:"address"`
	Phone        string `db:"phone"`
	ImageLink    string `db:"image_link"`
	FacebookLink string `db:"facebook_link"`
	Genres       string `db:"genres"`
}

func (*Venue) TableName() string { return "venues" }

func (*Venue) Columns() []string {
	return []string{"name", "city", "state", "address", "phone", "image_link", "facebook_link", "genres"}
}

func (v *Venue) Values() []any {
	return []any{v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Genres}
}

func (v *Venue) PK() uint64      { return v.ID }
func (v *Venue) SetPK(id uint64) { v.ID = id }
