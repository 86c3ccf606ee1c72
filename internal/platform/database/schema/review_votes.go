package schema

// ReviewVotesTable represents the 'review_votes' table
type ReviewVotesTable struct {
	Table     string
	ReviewID  string
	UserID    string
	Value     string
	CreatedAt string
	UpdatedAt string

	// ReviewFKey is violated when voting on a review that does not exist
	ReviewFKey string
}

// ReviewVotes is the schema definition for review_votes
var ReviewVotes = ReviewVotesTable{
	Table:      "review_votes",
	ReviewID:   "review_id",
	UserID:     "user_id",
	Value:      "value",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
	ReviewFKey: "review_votes_review_id_fkey",
}
