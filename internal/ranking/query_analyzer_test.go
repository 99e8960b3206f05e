package ranking

import (
	"reflect"
	"testing"
)

func TestQueryAnalyzer_Analyze(t *testing.T) {
	qa := NewQueryAnalyzer(fieldsTokenizer{})

	tests := []struct {
		name        string
		persona     string
		job         string
		wantTerms   []string
		wantPersona string
	}{
		{
			name:        "job terms only",
			persona:     "Travel Planner",
			job:         "Plan a trip of 4 days",
			wantTerms:   []string{"plan", "trip", "4", "days"},
			wantPersona: "travel planner",
		},
		{
			name:        "duplicates dropped in first occurrence order",
			persona:     "  Chef ",
			job:         "food and more food and drinks",
			wantTerms:   []string{"food", "more", "drinks"},
			wantPersona: "chef",
		},
		{
			name:        "stop words only",
			job:         "and the of",
			wantTerms:   []string{},
			wantPersona: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := qa.Analyze(tt.persona, tt.job)
			if !reflect.DeepEqual(q.Terms, tt.wantTerms) {
				t.Errorf("Terms = %v, want %v", q.Terms, tt.wantTerms)
			}
			if q.Persona != tt.wantPersona {
				t.Errorf("Persona = %q, want %q", q.Persona, tt.wantPersona)
			}
			if q.Job != tt.job {
				t.Errorf("Job = %q, want %q", q.Job, tt.job)
			}
		})
	}
}

func TestCountMatchingTerms(t *testing.T) {
	tests := []struct {
		name   string
		terms  []string
		tokens []string
		want   int
	}{
		{"none", []string{"food"}, []string{"temple"}, 0},
		{"repeated token counts once", []string{"food"}, []string{"food", "food"}, 1},
		{"two of three", []string{"food", "lodg", "train"}, []string{"lodg", "food", "cheap"}, 2},
		{"empty terms", nil, []string{"food"}, 0},
		{"empty tokens", []string{"food"}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountMatchingTerms(tt.terms, tt.tokens); got != tt.want {
				t.Errorf("CountMatchingTerms() = %d, want %d", got, tt.want)
			}
		})
	}
}
