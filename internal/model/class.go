package model

// Class is a flat class label, unique by name. No relation is enforced
// between Class.Name and User.Classe; both are free text.
type Class struct {
	ID   string `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}
