package models

type Author struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Nationality string `db:"nationality" json:"nationality,omitempty"`
	BirthYear   *int   `db:"birth_year" json:"birthYear,omitempty"`
}
