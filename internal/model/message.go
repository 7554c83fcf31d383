package model

// CourseNone is the sentinel CourseID for messages not tied to any course.
const CourseNone = "none"

// Message is a note left by a user, optionally attached to a course.
//
// FromID references User.ID but is not foreign-key enforced; an orphaned
// FromID is tolerated. CourseTitle is a denormalized copy taken at post
// time. CreatedAt is a server-assigned ISO-8601 UTC timestamp with
// millisecond precision; its fixed width makes lexicographic order equal
// to chronological order, which the retrieval query relies on.
type Message struct {
	ID          string `json:"id"          db:"id"`
	FromID      string `json:"fromId"      db:"fromId"`
	CourseID    string `json:"courseId"    db:"courseId"`
	CourseTitle string `json:"courseTitle" db:"courseTitle"`
	Text        string `json:"text"        db:"text"`
	CreatedAt   string `json:"createdAt"   db:"createdAt"`
}
