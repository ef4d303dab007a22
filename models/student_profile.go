package models

import "time"

// StudentProfile holds the enrolment details of a student. Each user has at
// most one.
type StudentProfile struct {
	ID                   int64     `json:"id" db:"id"`
	UserID               int64     `json:"user_id" db:"user_id"`
	Email                string    `json:"email" db:"email"`
	Phone                string    `json:"phone" db:"phone"`
	Address              string    `json:"address" db:"address"`
	Branch               string    `json:"branch" db:"branch"`
	Space                string    `json:"space" db:"space"`
	Week                 int       `json:"week" db:"week"`
	Advisor              string    `json:"advisor" db:"advisor"`
	Mentor               string    `json:"mentor" db:"mentor"`
	Qualification        string    `json:"qualification" db:"qualification"`
	Institution          string    `json:"institution" db:"institution"`
	PassOutYear          *int      `json:"pass_out_year,omitempty" db:"pass_out_year"`
	GuardianName         string    `json:"guardian_name" db:"guardian_name"`
	GuardianRelationship string    `json:"guardian_relationship" db:"guardian_relationship"`
	GuardianPhone        string    `json:"guardian_phone" db:"guardian_phone"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the name of the database table
// associated with the StudentProfile model.
func (p StudentProfile) TableName() string {
	return "student_profiles"
}

// StudentProfileRequest is the body of profile create and update calls.
// On update, empty strings and zero numbers keep the stored value.
type StudentProfileRequest struct {
	UserID               int64  `json:"user_id"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	Branch               string `json:"branch"`
	Space                string `json:"space"`
	Week                 int    `json:"week"`
	Advisor              string `json:"advisor"`
	Mentor               string `json:"mentor"`
	Qualification        string `json:"qualification"`
	Institution          string `json:"institution"`
	PassOutYear          *int   `json:"pass_out_year"`
	GuardianName         string `json:"guardian_name"`
	GuardianRelationship string `json:"guardian_relationship"`
	GuardianPhone        string `json:"guardian_phone"`
}

// Profile copies the request fields into a [StudentProfile].
func (r StudentProfileRequest) Profile() StudentProfile {
	return StudentProfile{
		UserID:               r.UserID,
		Email:                r.Email,
		Phone:                r.Phone,
		Address:              r.Address,
		Branch:               r.Branch,
		Space:                r.Space,
		Week:                 r.Week,
		Advisor:              r.Advisor,
		Mentor:               r.Mentor,
		Qualification:        r.Qualification,
		Institution:          r.Institution,
		PassOutYear:          r.PassOutYear,
		GuardianName:         r.GuardianName,
		GuardianRelationship: r.GuardianRelationship,
		GuardianPhone:        r.GuardianPhone,
	}
}
