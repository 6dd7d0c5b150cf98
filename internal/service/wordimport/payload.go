package wordimport

import (
	"encoding/json"
	"strings"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// wordPayload is the wire shape of a normalized word. Pointer fields are
// optional; required strings are plain so a blank value fails "required".
type wordPayload struct {
	Headword    string  `json:"headword"    validate:"required,max=128"`
	Rank        *int    `json:"rank"        validate:"omitempty,gt=0"`
	BookID      *string `json:"bookId"      validate:"omitempty,max=64"`
	PhoneticUS  *string `json:"phoneticUs"  validate:"omitempty,max=128"`
	PhoneticUK  *string `json:"phoneticUk"  validate:"omitempty,max=128"`
	AudioUS     *string `json:"audioUs"     validate:"omitempty,url,max=512"`
	AudioUK     *string `json:"audioUk"     validate:"omitempty,url,max=512"`
	MemoryTip   *string `json:"memoryTip"   validate:"omitempty,max=2000"`
	Description *string `json:"description" validate:"omitempty,max=4000"`

	Definitions       []definitionPayload   `json:"definitions"       validate:"dive"`
	Examples          []examplePayload      `json:"examples"          validate:"dive"`
	SynonymGroups     []synonymGroupPayload `json:"synonymGroups"     validate:"dive"`
	Phrases           []phrasePayload       `json:"phrases"           validate:"dive"`
	RelatedWords      []relatedWordPayload  `json:"relatedWords"      validate:"dive"`
	Antonyms          []antonymPayload      `json:"antonyms"          validate:"dive"`
	RealExamSentences []examSentencePayload `json:"realExamSentences" validate:"dive"`
	ExamQuestions     []examQuestionPayload `json:"examQuestions"     validate:"dive"`
}

type definitionPayload struct {
	PartOfSpeech *string          `json:"partOfSpeech" validate:"omitempty,max=32"`
	MeaningCN    *string          `json:"meaningCn"    validate:"omitempty,max=1024"`
	MeaningEN    *string          `json:"meaningEn"    validate:"omitempty,max=1024"`
	Note         *string          `json:"note"         validate:"omitempty,max=1024"`
	Examples     []examplePayload `json:"examples"     validate:"dive"`
}

type examplePayload struct {
	Source      string          `json:"source"      validate:"required,max=1024"`
	Translation *string         `json:"translation" validate:"omitempty,max=1024"`
	Meta        json.RawMessage `json:"meta"`
}

type synonymGroupPayload struct {
	PartOfSpeech *string  `json:"partOfSpeech" validate:"omitempty,max=32"`
	Meaning      *string  `json:"meaning"      validate:"omitempty,max=512"`
	Words        []string `json:"words"        validate:"dive,max=128"`
}

type phrasePayload struct {
	Content   string  `json:"content"   validate:"required,max=512"`
	MeaningCN *string `json:"meaningCn" validate:"omitempty,max=1024"`
	MeaningEN *string `json:"meaningEn" validate:"omitempty,max=1024"`
}

type relatedWordPayload struct {
	Headword     string  `json:"headword"     validate:"required,max=128"`
	PartOfSpeech *string `json:"partOfSpeech" validate:"omitempty,max=32"`
	Meaning      *string `json:"meaning"      validate:"omitempty,max=512"`
}

type antonymPayload struct {
	Headword string  `json:"headword" validate:"required,max=128"`
	Meaning  *string `json:"meaning"  validate:"omitempty,max=512"`
}

type examSentencePayload struct {
	Content     string  `json:"content"     validate:"required,max=2048"`
	Translation *string `json:"translation" validate:"omitempty,max=2048"`
	Source      *string `json:"source"      validate:"omitempty,max=256"`
}

type examQuestionPayload struct {
	Question    string              `json:"question"    validate:"required,max=2048"`
	Explanation *string             `json:"explanation" validate:"omitempty,max=4000"`
	AnswerIndex *int                `json:"answerIndex" validate:"omitempty,gte=0"`
	Type        *string             `json:"type"        validate:"omitempty,max=64"`
	Choices     []examChoicePayload `json:"choices"     validate:"dive"`
}

type examChoicePayload struct {
	Index   int    `json:"index"   validate:"gte=0"`
	Content string `json:"content" validate:"required,max=1024"`
}

// ---------------------------------------------------------------------------
// Trimming and empty-leaf pruning
// ---------------------------------------------------------------------------

// normalize trims every string, turns blank optionals into nil and drops
// nested leaves that carry no content.
func (p *wordPayload) normalize() {
	p.Headword = strings.TrimSpace(p.Headword)
	trimAll(&p.BookID, &p.PhoneticUS, &p.PhoneticUK, &p.AudioUS, &p.AudioUK, &p.MemoryTip, &p.Description)

	p.Definitions = keep(p.Definitions, func(d *definitionPayload) bool {
		trimAll(&d.PartOfSpeech, &d.MeaningCN, &d.MeaningEN, &d.Note)
		d.Examples = keep(d.Examples, (*examplePayload).normalize)
		return d.PartOfSpeech != nil || d.MeaningCN != nil || d.MeaningEN != nil || d.Note != nil || len(d.Examples) > 0
	})

	p.Examples = keep(p.Examples, (*examplePayload).normalize)

	p.SynonymGroups = keep(p.SynonymGroups, func(g *synonymGroupPayload) bool {
		trimAll(&g.PartOfSpeech, &g.Meaning)
		g.Words = nonBlank(g.Words)
		return len(g.Words) > 0 || g.PartOfSpeech != nil || g.Meaning != nil
	})

	p.Phrases = keep(p.Phrases, func(ph *phrasePayload) bool {
		ph.Content = strings.TrimSpace(ph.Content)
		trimAll(&ph.MeaningCN, &ph.MeaningEN)
		return ph.Content != ""
	})

	p.RelatedWords = keep(p.RelatedWords, func(rw *relatedWordPayload) bool {
		rw.Headword = strings.TrimSpace(rw.Headword)
		trimAll(&rw.PartOfSpeech, &rw.Meaning)
		return rw.Headword != ""
	})

	p.Antonyms = keep(p.Antonyms, func(a *antonymPayload) bool {
		a.Headword = strings.TrimSpace(a.Headword)
		trimAll(&a.Meaning)
		return a.Headword != ""
	})

	p.RealExamSentences = keep(p.RealExamSentences, func(s *examSentencePayload) bool {
		s.Content = strings.TrimSpace(s.Content)
		trimAll(&s.Translation, &s.Source)
		return s.Content != ""
	})

	p.ExamQuestions = keep(p.ExamQuestions, func(q *examQuestionPayload) bool {
		q.Question = strings.TrimSpace(q.Question)
		trimAll(&q.Explanation, &q.Type)
		q.Choices = keep(q.Choices, func(c *examChoicePayload) bool {
			c.Content = strings.TrimSpace(c.Content)
			return c.Content != ""
		})
		return q.Question != ""
	})
}

func (e *examplePayload) normalize() bool {
	e.Source = strings.TrimSpace(e.Source)
	trimAll(&e.Translation)
	if len(e.Meta) == 0 || string(e.Meta) == "null" {
		e.Meta = nil
	}
	return e.Source != ""
}

// keep filters items in place, retaining those for which fn returns true.
// fn may mutate the item. An empty result is nil.
func keep[T any](items []T, fn func(*T) bool) []T {
	var out []T
	for i := range items {
		if fn(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func trimAll(fields ...**string) {
	for _, f := range fields {
		*f = trimPtr(*f)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func nonBlank(words []string) []string {
	var out []string
	for _, w := range words {
		if t := strings.TrimSpace(w); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Conversion to domain
// ---------------------------------------------------------------------------

func (p *wordPayload) toDomain() domain.NormalizedWord {
	w := domain.NormalizedWord{
		Headword:    p.Headword,
		Rank:        p.Rank,
		BookID:      p.BookID,
		PhoneticUS:  p.PhoneticUS,
		PhoneticUK:  p.PhoneticUK,
		AudioUS:     p.AudioUS,
		AudioUK:     p.AudioUK,
		MemoryTip:   p.MemoryTip,
		Description: p.Description,
		Examples:    toExamples(p.Examples),
	}

	for _, d := range p.Definitions {
		w.Definitions = append(w.Definitions, domain.Definition{
			PartOfSpeech: d.PartOfSpeech,
			MeaningCN:    d.MeaningCN,
			MeaningEN:    d.MeaningEN,
			Note:         d.Note,
			Examples:     toExamples(d.Examples),
		})
	}
	for _, g := range p.SynonymGroups {
		w.SynonymGroups = append(w.SynonymGroups, domain.SynonymGroup{
			PartOfSpeech: g.PartOfSpeech,
			Meaning:      g.Meaning,
			Words:        g.Words,
		})
	}
	for _, ph := range p.Phrases {
		w.Phrases = append(w.Phrases, domain.Phrase{Content: ph.Content, MeaningCN: ph.MeaningCN, MeaningEN: ph.MeaningEN})
	}
	for _, rw := range p.RelatedWords {
		w.RelatedWords = append(w.RelatedWords, domain.RelatedWord{Headword: rw.Headword, PartOfSpeech: rw.PartOfSpeech, Meaning: rw.Meaning})
	}
	for _, a := range p.Antonyms {
		w.Antonyms = append(w.Antonyms, domain.Antonym{Headword: a.Headword, Meaning: a.Meaning})
	}
	for _, s := range p.RealExamSentences {
		w.RealExamSentences = append(w.RealExamSentences, domain.ExamSentence{Content: s.Content, Translation: s.Translation, Source: s.Source})
	}
	for _, q := range p.ExamQuestions {
		eq := domain.ExamQuestion{
			Question:    q.Question,
			Explanation: q.Explanation,
			AnswerIndex: q.AnswerIndex,
			Type:        q.Type,
		}
		for _, c := range q.Choices {
			eq.Choices = append(eq.Choices, domain.ExamChoice{Index: c.Index, Content: c.Content})
		}
		w.ExamQuestions = append(w.ExamQuestions, eq)
	}

	return w
}

func toExamples(items []examplePayload) []domain.Example {
	var out []domain.Example
	for _, e := range items {
		out = append(out, domain.Example{Source: e.Source, Translation: e.Translation, Meta: e.Meta})
	}
	return out
}
