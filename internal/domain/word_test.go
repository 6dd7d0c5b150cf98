package domain

import "testing"

func TestNormalizedWord_Key(t *testing.T) {
	t.Parallel()

	book := "Book-1"
	tests := []struct {
		name string
		word NormalizedWord
		want string
	}{
		{"with book", NormalizedWord{Headword: "ruler", BookID: &book}, "ruler::Book-1"},
		{"without book", NormalizedWord{Headword: "apple"}, "apple::"},
		{"trims headword", NormalizedWord{Headword: "  apple "}, "apple::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.word.Key().String(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveAudioURLs(t *testing.T) {
	t.Parallel()

	got := DeriveAudioURLs("ice cream")

	if got.US != "https://dict.youdao.com/dictvoice?audio=ice+cream&type=2" {
		t.Errorf("US = %q", got.US)
	}
	if got.UK != "https://dict.youdao.com/dictvoice?audio=ice+cream&type=1" {
		t.Errorf("UK = %q", got.UK)
	}
	if again := DeriveAudioURLs("ice cream"); again != got {
		t.Error("DeriveAudioURLs should be deterministic")
	}
}

func TestImportStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ImportStatus{ImportStatusSuccess, ImportStatusSkipped, ImportStatusFailed} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if ImportStatus("pending").IsValid() {
		t.Error("pending should not be valid")
	}
}
