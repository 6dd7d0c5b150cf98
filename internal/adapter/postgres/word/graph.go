package word

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// deleteGraphSQL clears a word's nested rows, children before parents.
var deleteGraphSQL = []string{
	`DELETE FROM word_exam_choices WHERE question_id IN (SELECT id FROM word_exam_questions WHERE word_id = $1)`,
	`DELETE FROM word_exam_questions WHERE word_id = $1`,
	`DELETE FROM word_exam_sentences WHERE word_id = $1`,
	`DELETE FROM word_antonyms WHERE word_id = $1`,
	`DELETE FROM word_related_words WHERE word_id = $1`,
	`DELETE FROM word_phrases WHERE word_id = $1`,
	`DELETE FROM word_synonyms WHERE group_id IN (SELECT id FROM word_synonym_groups WHERE word_id = $1)`,
	`DELETE FROM word_synonym_groups WHERE word_id = $1`,
	`DELETE FROM word_examples WHERE word_id = $1`,
	`DELETE FROM word_definitions WHERE word_id = $1`,
}

const (
	insertDefinitionSQL = `INSERT INTO word_definitions (id, word_id, part_of_speech, meaning_cn, meaning_en, note, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	insertExampleSQL = `INSERT INTO word_examples (id, word_id, definition_id, source, translation, meta, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	insertSynonymGroupSQL = `INSERT INTO word_synonym_groups (id, word_id, part_of_speech, meaning, position)
VALUES ($1, $2, $3, $4, $5)`
	insertSynonymSQL = `INSERT INTO word_synonyms (id, group_id, word, position)
VALUES ($1, $2, $3, $4)`
	insertPhraseSQL = `INSERT INTO word_phrases (id, word_id, content, meaning_cn, meaning_en, position)
VALUES ($1, $2, $3, $4, $5, $6)`
	insertRelatedWordSQL = `INSERT INTO word_related_words (id, word_id, headword, part_of_speech, meaning, position)
VALUES ($1, $2, $3, $4, $5, $6)`
	insertAntonymSQL = `INSERT INTO word_antonyms (id, word_id, headword, meaning, position)
VALUES ($1, $2, $3, $4, $5)`
	insertExamSentenceSQL = `INSERT INTO word_exam_sentences (id, word_id, content, translation, source, position)
VALUES ($1, $2, $3, $4, $5, $6)`
	insertExamQuestionSQL = `INSERT INTO word_exam_questions (id, word_id, question, explanation, answer_index, question_type, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	insertExamChoiceSQL = `INSERT INTO word_exam_choices (id, question_id, choice_index, content)
VALUES ($1, $2, $3, $4)`
)

// queueGraph queues inserts for every nested collection of w. Ids are
// generated here so parents and children fit in the same batch.
func queueGraph(batch *pgx.Batch, wordID uuid.UUID, w domain.NormalizedWord) {
	for i, d := range w.Definitions {
		defID := uuid.New()
		batch.Queue(insertDefinitionSQL, defID, wordID, d.PartOfSpeech, d.MeaningCN, d.MeaningEN, d.Note, i)
		for j, ex := range d.Examples {
			queueExample(batch, wordID, &defID, ex, j)
		}
	}

	for i, ex := range w.Examples {
		queueExample(batch, wordID, nil, ex, i)
	}

	for i, g := range w.SynonymGroups {
		groupID := uuid.New()
		batch.Queue(insertSynonymGroupSQL, groupID, wordID, g.PartOfSpeech, g.Meaning, i)
		for j, s := range g.Words {
			batch.Queue(insertSynonymSQL, uuid.New(), groupID, s, j)
		}
	}

	for i, p := range w.Phrases {
		batch.Queue(insertPhraseSQL, uuid.New(), wordID, p.Content, p.MeaningCN, p.MeaningEN, i)
	}

	for i, rw := range w.RelatedWords {
		batch.Queue(insertRelatedWordSQL, uuid.New(), wordID, rw.Headword, rw.PartOfSpeech, rw.Meaning, i)
	}

	for i, a := range w.Antonyms {
		batch.Queue(insertAntonymSQL, uuid.New(), wordID, a.Headword, a.Meaning, i)
	}

	for i, s := range w.RealExamSentences {
		batch.Queue(insertExamSentenceSQL, uuid.New(), wordID, s.Content, s.Translation, s.Source, i)
	}

	for i, q := range w.ExamQuestions {
		questionID := uuid.New()
		batch.Queue(insertExamQuestionSQL, questionID, wordID, q.Question, q.Explanation, q.AnswerIndex, q.Type, i)
		for _, c := range q.Choices {
			batch.Queue(insertExamChoiceSQL, uuid.New(), questionID, c.Index, c.Content)
		}
	}
}

func queueExample(batch *pgx.Batch, wordID uuid.UUID, definitionID *uuid.UUID, ex domain.Example, position int) {
	var meta any
	if len(ex.Meta) > 0 {
		meta = []byte(ex.Meta)
	}
	batch.Queue(insertExampleSQL, uuid.New(), wordID, definitionID, ex.Source, ex.Translation, meta, position)
}
