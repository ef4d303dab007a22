package models

// MentorAssignRequest assigns (or unassigns) a set of users to a mentor.
type MentorAssignRequest struct {
	MentorID int64   `json:"mentor_id"`
	UserIDs  []int64 `json:"user_ids"`
}

// MenteeView is the public projection of a user in mentor listings.
type MenteeView struct {
	ID              int64   `json:"id" db:"user_id"`
	FullName        string  `json:"full_name" db:"full_name"`
	Email           string  `json:"email" db:"email"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" db:"profile_image_url"`
	MentorID        *int64  `json:"mentor_id,omitempty" db:"mentor_id"`
	MentorName      *string `json:"mentor_name,omitempty" db:"mentor_name"`
}
