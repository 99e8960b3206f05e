package nlp

import (
	"reflect"
	"strings"
	"testing"
)

func loadResources(t *testing.T) *Resources {
	t.Helper()
	res, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return res
}

func TestTokenize(t *testing.T) {
	res := loadResources(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stems plural", "temples", []string{"templ"}},
		{"drops stop words", "food and lodging", []string{"food", "lodg"}},
		{"case insensitive", "FOOD And Lodging", []string{"food", "lodg"}},
		{"drops punctuation", "food, food! (food)", []string{"food", "food", "food"}},
		{"drops mixed tokens", "3.5 stars", []string{"star"}},
		{"keeps numbers", "top 10 temples", []string{"top", "10", "templ"}},
		{"empty", "   ", nil},
		{"only stop words", "the and of", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := res.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenize_deterministic(t *testing.T) {
	res := loadResources(t)
	text := "Kyoto offers temples, gardens and traditional ryokan accommodations."
	first := res.Tokenize(text)
	for i := 0; i < 5; i++ {
		if got := res.Tokenize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %v != %v", i, got, first)
		}
	}
}

func TestTokenizeTitle_keepsStopWords(t *testing.T) {
	res := loadResources(t)

	if got, want := res.TokenizeTitle("Own Your Trip"), []string{"own", "your", "trip"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeTitle() = %v, want %v", got, want)
	}
	if got, want := res.Tokenize("Own Your Trip"), []string{"trip"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
	if got := res.TokenizeTitle("  "); got != nil {
		t.Errorf("TokenizeTitle(blank) = %v, want nil", got)
	}
}

func TestSentences(t *testing.T) {
	res := loadResources(t)
	text := "Kyoto is famous for temples. Osaka is known for food! Where should we stay?"
	got := res.Sentences(text)
	if len(got) != 3 {
		t.Fatalf("Sentences() = %q, want 3 sentences", got)
	}
	if got[0] != "Kyoto is famous for temples." {
		t.Errorf("first sentence = %q", got[0])
	}
	if strings.Join(got, " ") != text {
		t.Errorf("joined sentences %q differ from input", strings.Join(got, " "))
	}
}

func TestSentences_empty(t *testing.T) {
	res := loadResources(t)
	if got := res.Sentences(""); len(got) != 0 {
		t.Errorf("Sentences(\"\") = %q", got)
	}
}
