package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NormalizedWord is the canonical shape of a dictionary word produced by
// validation or legacy normalization. All strings are trimmed; blank optional
// strings are nil and blank nested leaves have been pruned.
type NormalizedWord struct {
	Headword    string
	Rank        *int
	BookID      *string
	PhoneticUS  *string
	PhoneticUK  *string
	AudioUS     *string
	AudioUK     *string
	MemoryTip   *string
	Description *string

	Definitions       []Definition
	Examples          []Example
	SynonymGroups     []SynonymGroup
	Phrases           []Phrase
	RelatedWords      []RelatedWord
	Antonyms          []Antonym
	RealExamSentences []ExamSentence
	ExamQuestions     []ExamQuestion
}

// Key returns the composite (headword, book) key used for duplicate and
// existence detection.
func (w *NormalizedWord) Key() WordKey {
	k := WordKey{Headword: strings.TrimSpace(w.Headword)}
	if w.BookID != nil {
		k.BookID = *w.BookID
	}
	return k
}

// Definition is one meaning of a word with its own examples.
type Definition struct {
	PartOfSpeech *string
	MeaningCN    *string
	MeaningEN    *string
	Note         *string
	Examples     []Example
}

// Example is a usage sentence. Meta holds the untouched source item, if any.
type Example struct {
	Source      string
	Translation *string
	Meta        json.RawMessage
}

// SynonymGroup groups synonyms sharing a part of speech and meaning.
type SynonymGroup struct {
	PartOfSpeech *string
	Meaning      *string
	Words        []string
}

// Phrase is a fixed expression containing the headword.
type Phrase struct {
	Content   string
	MeaningCN *string
	MeaningEN *string
}

// RelatedWord is a derived or cognate word.
type RelatedWord struct {
	Headword     string
	PartOfSpeech *string
	Meaning      *string
}

// Antonym is a word of opposite meaning.
type Antonym struct {
	Headword string
	Meaning  *string
}

// ExamSentence is a sentence quoted from a real exam paper.
type ExamSentence struct {
	Content     string
	Translation *string
	Source      *string
}

// ExamQuestion is a multiple choice question about the word.
type ExamQuestion struct {
	Question    string
	Explanation *string
	AnswerIndex *int
	Type        *string
	Choices     []ExamChoice
}

// ExamChoice is one option of an ExamQuestion.
type ExamChoice struct {
	Index   int
	Content string
}

// WordKey identifies a word within a book. An empty BookID means "no book".
type WordKey struct {
	Headword string
	BookID   string
}

func (k WordKey) String() string {
	return k.Headword + "::" + k.BookID
}

// Word is a persisted word row (scalar fields only).
type Word struct {
	ID          uuid.UUID
	Headword    string
	Rank        *int
	BookID      *string
	PhoneticUS  *string
	PhoneticUK  *string
	AudioUS     string
	AudioUK     string
	MemoryTip   *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
