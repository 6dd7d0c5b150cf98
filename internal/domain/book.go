package domain

import "time"

// Book is a named grouping of words (e.g. a textbook unit). Its ID is the
// external identifier referenced by imported words.
type Book struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
