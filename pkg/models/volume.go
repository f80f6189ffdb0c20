package models

// Volume is a maximal run of consecutive chapters sharing one volume label.
type Volume struct {
	Title    string     `json:"title"`
	Chapters []*Chapter `json:"chapters"`
}
