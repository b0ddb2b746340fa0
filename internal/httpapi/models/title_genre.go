package models

// explicit join model so the association row carries its own unique
// constraint; deleting a genre removes only these rows, never the title
type TitleGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"not null;uniqueIndex:idx_title_genres_pair"`
	GenreID int64 `json:"genre_id" gorm:"not null;uniqueIndex:idx_title_genres_pair"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
