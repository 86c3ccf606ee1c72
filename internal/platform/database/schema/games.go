package schema

// GamesTable represents the 'games' table
type GamesTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	Genre       string
	CreatedAt   string
	UpdatedAt   string

	NameKey string
	SlugKey string
}

// Games is the schema definition for games
var Games = GamesTable{
	Table:       "games",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	Genre:       "genre",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
	NameKey:     "games_name_key",
	SlugKey:     "games_slug_key",
}
