package model

// Course is a teaching resource published by an administrator for a class.
// Immutable once created.
type Course struct {
	ID      string `json:"id"      db:"id"`
	Title   string `json:"title"   db:"title"`
	Class   string `json:"class"   db:"class"` // free-text target class label
	Subject string `json:"subject" db:"subject"`
	Type    string `json:"type"    db:"type"`
	Content string `json:"content" db:"content"`
}
