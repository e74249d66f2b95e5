package models

// Class is the subset of a school class the fee engine reads.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
