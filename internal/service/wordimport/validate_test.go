package wordimport

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

func TestValidate_Minimal(t *testing.T) {
	t.Parallel()

	w, issues := Validate(json.RawMessage(`{"headword":"apple"}`))

	require.Empty(t, issues)
	assert.Equal(t, "apple", w.Headword)
	assert.Nil(t, w.BookID)
	assert.Nil(t, w.Rank)
	assert.Empty(t, w.Definitions)
}

func TestValidate_FullShape(t *testing.T) {
	t.Parallel()

	w, issues := Validate(json.RawMessage(`{
		"headword": "run",
		"rank": 12,
		"bookId": "CET4_1",
		"phoneticUs": "rʌn",
		"phoneticUk": "rʌn",
		"audioUs": "https://audio.example.com/run-us.mp3",
		"memoryTip": "  r + un  ",
		"description": "",
		"definitions": [
			{"partOfSpeech": "v", "meaningCn": "跑", "examples": [{"source": "I run.", "translation": "我跑。"}]}
		],
		"examples": [{"source": "Run!", "meta": {"id": 7}}],
		"synonymGroups": [{"partOfSpeech": "v", "meaning": "移动", "words": ["sprint", " jog "]}],
		"phrases": [{"content": "run out", "meaningCn": "用完"}],
		"relatedWords": [{"headword": "runner", "partOfSpeech": "n"}],
		"antonyms": [{"headword": "walk"}],
		"realExamSentences": [{"content": "He runs fast.", "source": "CET4 2019"}],
		"examQuestions": [{
			"question": "Pick the verb",
			"answerIndex": 1,
			"choices": [{"index": 1, "content": "run"}, {"index": 2, "content": "runner"}]
		}]
	}`))

	require.Empty(t, issues)
	assert.Equal(t, "run", w.Headword)
	require.NotNil(t, w.Rank)
	assert.Equal(t, 12, *w.Rank)
	assert.Equal(t, "CET4_1", *w.BookID)
	assert.Equal(t, "r + un", *w.MemoryTip)
	assert.Nil(t, w.Description, "blank optional becomes nil")
	assert.Nil(t, w.AudioUK)

	require.Len(t, w.Definitions, 1)
	require.Len(t, w.Definitions[0].Examples, 1)
	assert.Equal(t, "我跑。", *w.Definitions[0].Examples[0].Translation)

	require.Len(t, w.Examples, 1)
	assert.JSONEq(t, `{"id": 7}`, string(w.Examples[0].Meta))

	require.Len(t, w.SynonymGroups, 1)
	assert.Equal(t, []string{"sprint", "jog"}, w.SynonymGroups[0].Words)
	require.Len(t, w.Phrases, 1)
	require.Len(t, w.RelatedWords, 1)
	require.Len(t, w.Antonyms, 1)
	require.Len(t, w.RealExamSentences, 1)
	require.Len(t, w.ExamQuestions, 1)
	assert.Len(t, w.ExamQuestions[0].Choices, 2)
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing headword",
			input:     `{"foo":"bar"}`,
			wantField: "headword",
			wantMsg:   "headword is a required field",
		},
		{
			name:      "blank headword",
			input:     `{"headword":"   "}`,
			wantField: "headword",
			wantMsg:   "headword is a required field",
		},
		{
			name:      "headword too long",
			input:     `{"headword":"` + strings.Repeat("a", 129) + `"}`,
			wantField: "headword",
			wantMsg:   "headword must be a maximum of 128 characters in length",
		},
		{
			name:      "non-positive rank",
			input:     `{"headword":"a","rank":0}`,
			wantField: "rank",
			wantMsg:   "rank must be greater than 0",
		},
		{
			name:      "bad audio url",
			input:     `{"headword":"a","audioUs":"not a url"}`,
			wantField: "audioUs",
			wantMsg:   "audioUs must be a valid URL",
		},
		{
			name:      "wrong type",
			input:     `{"headword":"a","rank":"seven"}`,
			wantField: "rank",
			wantMsg:   "expected integer, got string",
		},
		{
			name:    "not an object",
			input:   `["apple"]`,
			wantMsg: "expected object",
		},
		{
			name:    "invalid json",
			input:   `{"headword":`,
			wantMsg: "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, issues := Validate(json.RawMessage(tt.input))

			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantField, issues[0].Field)
			assert.Equal(t, tt.wantMsg, issues[0].Message)
		})
	}
}

func TestValidate_KeysAreCaseSensitive(t *testing.T) {
	t.Parallel()

	_, issues := Validate(json.RawMessage(`{"headWord":"cat"}`))
	require.Len(t, issues, 1)
	assert.Equal(t, "headword", issues[0].Field)

	w, issues := Validate(json.RawMessage(`{"headword":"cat","Rank":0,"definitions":[{"MeaningCn":"x","meaningCn":"猫"}]}`))
	require.Empty(t, issues)
	assert.Nil(t, w.Rank)
	require.Len(t, w.Definitions, 1)
	assert.Equal(t, "猫", *w.Definitions[0].MeaningCN)
}

func TestValidate_NestedPath(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 1100)
	_, issues := Validate(json.RawMessage(`{
		"headword": "a",
		"definitions": [
			{"meaningCn": "一"},
			{"meaningCn": "二", "examples": [{"source": "ok"}, {"source": "` + long + `"}]}
		]
	}`))

	require.Len(t, issues, 1)
	assert.Equal(t, "definitions[1].examples[1].source", issues[0].Field)
	assert.Contains(t, issues[0].Message, "maximum")
}

func TestValidate_MultipleIssues(t *testing.T) {
	t.Parallel()

	_, issues := Validate(json.RawMessage(`{"headword":"","rank":-1,"audioUk":"nope"}`))

	fields := make([]string, len(issues))
	for i, is := range issues {
		fields[i] = is.Field
	}
	assert.ElementsMatch(t, []string{"headword", "rank", "audioUk"}, fields)
}

func TestValidate_PrunesEmptyDefinition(t *testing.T) {
	t.Parallel()

	w, issues := Validate(json.RawMessage(`{
		"headword": "a",
		"definitions": [{"partOfSpeech": " ", "meaningCn": "", "meaningEn": "\t", "note": null, "examples": []}]
	}`))

	require.Empty(t, issues)
	assert.Empty(t, w.Definitions)
}

func TestValidate_PrunedLeafIsNotRejected(t *testing.T) {
	t.Parallel()

	w, issues := Validate(json.RawMessage(`{
		"headword": "a",
		"examples": [{"source": "", "translation": "orphan"}],
		"phrases": [{"content": "  "}],
		"relatedWords": [{"headword": ""}],
		"antonyms": [{"headword": " "}],
		"realExamSentences": [{"content": ""}],
		"examQuestions": [{"question": "q", "choices": [{"index": 1, "content": ""}]}]
	}`))

	require.Empty(t, issues)
	assert.Empty(t, w.Examples)
	assert.Empty(t, w.Phrases)
	assert.Empty(t, w.RelatedWords)
	assert.Empty(t, w.Antonyms)
	assert.Empty(t, w.RealExamSentences)
	require.Len(t, w.ExamQuestions, 1)
	assert.Empty(t, w.ExamQuestions[0].Choices)
}

func TestValidate_NeverPanics(t *testing.T) {
	t.Parallel()

	inputs := []string{``, `null`, `true`, `"str"`, `0`, `{}`, `{"headword":null}`, `{"definitions":"x"}`, `{"headword":{}}`}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, issues := Validate(json.RawMessage(in))
			assert.NotEmpty(t, issues, "input %q", in)
		})
	}
}

func TestFormatIssues(t *testing.T) {
	t.Parallel()

	got := formatIssues([]domain.FieldError{
		{Field: "", Message: "expected object"},
		{Field: "headword", Message: "headword is a required field"},
	})

	assert.Equal(t, []string{"expected object", "headword: headword is a required field"}, got)
}
