package wordimport

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wordbook-admin/internal/domain"
)

// Candidate is an entry that passed validation or legacy normalization.
// Index is its 0-based position in the input array.
type Candidate struct {
	Index int
	Label string
	Word  domain.NormalizedWord
}

// Deduplicate keeps the first candidate of every composite key and rejects
// the rest as skipped, pointing at the 1-based position of the first one.
// Order is preserved.
func Deduplicate(cands []Candidate) (kept []Candidate, rejected []domain.ImportErrorDetail) {
	first := make(map[domain.WordKey]int, len(cands))
	for _, c := range cands {
		key := c.Word.Key()
		if idx, ok := first[key]; ok {
			rejected = append(rejected, domain.ImportErrorDetail{
				Index:    c.Index,
				Headword: c.Label,
				Reason:   fmt.Sprintf("same as entry #%d, skipped", idx+1),
				Status:   domain.ImportStatusSkipped,
			})
			continue
		}
		first[key] = c.Index
		kept = append(kept, c)
	}
	return kept, rejected
}

var labelPaths = []string{
	"headword", "headWord", "head_word",
	"content.word.wordHead", "content.word.word_head",
}

// entryLabel extracts a best-effort headword from a raw entry, falling back
// to its 1-based position ("#3").
func entryLabel(raw json.RawMessage, index int) string {
	if gjson.ValidBytes(raw) {
		if s := firstString(gjson.ParseBytes(raw), labelPaths...); s != nil {
			return *s
		}
	}
	return "#" + strconv.Itoa(index+1)
}
