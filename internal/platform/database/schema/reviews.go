package schema

// ReviewsTable represents the 'reviews' table
type ReviewsTable struct {
	Table     string
	ID        string
	GameID    string
	UserID    string
	Content   string
	Score     string
	CreatedAt string
	UpdatedAt string

	// GameFKey is violated when reviewing a game that does not exist
	GameFKey string
}

// Reviews is the schema definition for reviews
var Reviews = ReviewsTable{
	Table:     "reviews",
	ID:        "id",
	GameID:    "game_id",
	UserID:    "user_id",
	Content:   "content",
	Score:     "score",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
	GameFKey:  "reviews_game_id_fkey",
}
