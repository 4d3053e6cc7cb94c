package models

// GameMap is a venue candidate for the map veto.
type GameMap struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	ImageKey *string `json:"-" db:"image_key"`
	ImageURL *string `json:"image_url,omitempty" db:"-"`
}
