package wordimport

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// RejectionError carries the reasons an entry could not be normalized.
type RejectionError struct {
	Reasons []string
}

func (e *RejectionError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func reject(reasons ...string) *RejectionError {
	return &RejectionError{Reasons: reasons}
}

// Paths of the word body in the dictionary export format.
const (
	legacyBodyPath = "content.word.content"
	legacyWordPath = "content.word"
)

// NormalizeLegacy reshapes an entry in the nested dictionary export format
// into a NormalizedWord. Every field is optional; the result goes through the
// same field rules as Validate. The returned error is a *RejectionError.
func NormalizeLegacy(raw json.RawMessage) (domain.NormalizedWord, error) {
	if !gjson.ValidBytes(raw) {
		return domain.NormalizedWord{}, reject("not an object")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return domain.NormalizedWord{}, reject("not an object")
	}

	word := root.Get(legacyWordPath)
	headword := firstString(root, "headWord", "head_word")
	if headword == nil {
		headword = firstString(word, "wordHead", "word_head")
	}
	if headword == nil {
		return domain.NormalizedWord{}, reject("missing headword")
	}

	body := root.Get(legacyBodyPath)
	p := wordPayload{
		Headword:   *headword,
		Rank:       firstInt(root, "wordRank", "word_rank"),
		BookID:     firstString(root, "bookId", "book_id"),
		PhoneticUS: firstString(body, "usphone", "us_phone"),
		PhoneticUK: firstString(body, "ukphone", "uk_phone"),
		MemoryTip:  firstString(body, "remMethod.val", "rem_method.val"),

		Definitions:       legacyDefinitions(body),
		Examples:          legacyExamples(body),
		SynonymGroups:     legacySynonymGroups(body),
		Phrases:           legacyPhrases(body),
		RelatedWords:      legacyRelatedWords(body),
		Antonyms:          legacyAntonyms(body),
		RealExamSentences: legacyExamSentences(body),
		ExamQuestions:     legacyExamQuestions(body),
	}

	w, issues := validatePayload(&p)
	if len(issues) > 0 {
		return domain.NormalizedWord{}, reject(formatIssues(issues)...)
	}
	return w, nil
}

func legacyDefinitions(body gjson.Result) []definitionPayload {
	var out []definitionPayload
	for _, t := range firstArray(body, "trans") {
		out = append(out, definitionPayload{
			PartOfSpeech: firstString(t, "pos"),
			MeaningCN:    firstString(t, "tranCn", "tran_cn"),
			MeaningEN:    firstString(t, "tranOther", "tran_other"),
			Note:         firstString(t, "descCn", "desc_cn"),
		})
	}
	return out
}

func legacyExamples(body gjson.Result) []examplePayload {
	var out []examplePayload
	for _, s := range firstArray(body, "sentence.sentences") {
		ex := examplePayload{
			Translation: firstString(s, "sCn", "s_cn"),
			Meta:        json.RawMessage(s.Raw),
		}
		if src := firstString(s, "sContent", "s_content", "sentence"); src != nil {
			ex.Source = *src
		}
		out = append(out, ex)
	}
	return out
}

func legacySynonymGroups(body gjson.Result) []synonymGroupPayload {
	var out []synonymGroupPayload
	for _, g := range firstArray(body, "syno.synos") {
		group := synonymGroupPayload{
			PartOfSpeech: firstString(g, "pos"),
			Meaning:      firstString(g, "tran"),
		}
		for _, hw := range firstArray(g, "hwds") {
			if w := firstString(hw, "w"); w != nil {
				group.Words = append(group.Words, *w)
			}
		}
		out = append(out, group)
	}
	return out
}

func legacyPhrases(body gjson.Result) []phrasePayload {
	var out []phrasePayload
	for _, ph := range firstArray(body, "phrase.phrases") {
		p := phrasePayload{
			MeaningCN: firstString(ph, "pCn", "p_cn"),
			MeaningEN: firstString(ph, "pEn", "p_en"),
		}
		if c := firstString(ph, "pContent", "p_content"); c != nil {
			p.Content = *c
		}
		out = append(out, p)
	}
	return out
}

// legacyRelatedWords flattens grouped related words; each word inherits its
// group's part of speech.
func legacyRelatedWords(body gjson.Result) []relatedWordPayload {
	var out []relatedWordPayload
	for _, group := range firstArray(body, "relWord.rels", "rel_word.rels") {
		pos := firstString(group, "pos")
		for _, w := range firstArray(group, "words") {
			rw := relatedWordPayload{PartOfSpeech: pos, Meaning: firstString(w, "tran")}
			if hw := firstString(w, "hwd"); hw != nil {
				rw.Headword = *hw
			}
			out = append(out, rw)
		}
	}
	return out
}

func legacyAntonyms(body gjson.Result) []antonymPayload {
	var out []antonymPayload
	for _, a := range firstArray(body, "antos.antos") {
		ant := antonymPayload{Meaning: firstString(a, "tran")}
		if hw := firstString(a, "hwd", "w"); hw != nil {
			ant.Headword = *hw
		}
		out = append(out, ant)
	}
	return out
}

func legacyExamSentences(body gjson.Result) []examSentencePayload {
	var out []examSentencePayload
	for _, s := range firstArray(body, "realExamSentence.sentences", "real_exam_sentence.sentences") {
		es := examSentencePayload{
			Translation: firstString(s, "sCn", "s_cn"),
			Source:      sourceInfo(firstOf(s, "sourceInfo", "source_info")),
		}
		if c := firstString(s, "sContent", "s_content"); c != nil {
			es.Content = *c
		}
		out = append(out, es)
	}
	return out
}

// sourceInfo joins the paper, level and year of an exam sentence source.
func sourceInfo(info gjson.Result) *string {
	if !info.IsObject() {
		return nil
	}
	var parts []string
	for _, key := range []string{"paper", "level", "year"} {
		if v := firstString(info, key); v != nil {
			parts = append(parts, *v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, " ")
	return &joined
}

func legacyExamQuestions(body gjson.Result) []examQuestionPayload {
	var out []examQuestionPayload
	for _, e := range firstArray(body, "exam") {
		q := examQuestionPayload{
			Explanation: firstString(e, "answer.explain"),
			AnswerIndex: firstInt(e, "answer.rightIndex", "answer.right_index"),
			Type:        firstString(e, "examType", "exam_type"),
		}
		if text := firstString(e, "question"); text != nil {
			q.Question = *text
		}
		for i, c := range firstArray(e, "choices") {
			choice := examChoicePayload{Index: i + 1}
			if idx := firstInt(c, "choiceIndex", "choice_index"); idx != nil {
				choice.Index = *idx
			}
			if content := firstString(c, "choice"); content != nil {
				choice.Content = *content
			}
			q.Choices = append(q.Choices, choice)
		}
		out = append(out, q)
	}
	return out
}

// ---------------------------------------------------------------------------
// Fallible field access
// ---------------------------------------------------------------------------

// firstOf returns the first existing value among paths.
func firstOf(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// firstString returns the first non-blank scalar among paths, trimmed.
func firstString(r gjson.Result, paths ...string) *string {
	for _, p := range paths {
		v := r.Get(p)
		if v.Type != gjson.String && v.Type != gjson.Number {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return &s
		}
	}
	return nil
}

// firstInt returns the first integral value among paths. Numeric strings are
// accepted; fractions are not.
func firstInt(r gjson.Result, paths ...string) *int {
	for _, p := range paths {
		v := r.Get(p)
		var raw string
		switch v.Type {
		case gjson.Number:
			raw = v.Raw
		case gjson.String:
			raw = strings.TrimSpace(v.Str)
		default:
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil {
			return &n
		}
	}
	return nil
}

// firstArray returns the items of the first array among paths.
func firstArray(r gjson.Result, paths ...string) []gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}
