package schema

// ReviewCommentsTable represents the 'review_comments' table
type ReviewCommentsTable struct {
	Table     string
	ID        string
	ReviewID  string
	UserID    string
	Content   string
	CreatedAt string
	UpdatedAt string

	// ReviewFKey is violated when commenting on a review that does not exist
	ReviewFKey string
}

// ReviewComments is the schema definition for review_comments
var ReviewComments = ReviewCommentsTable{
	Table:      "review_comments",
	ID:         "id",
	ReviewID:   "review_id",
	UserID:     "user_id",
	Content:    "content",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
	ReviewFKey: "review_comments_review_id_fkey",
}
