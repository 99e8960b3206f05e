package fileid

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDocumentID(t *testing.T) {
	id1 := DocumentID("/foo/bar.pdf")
	id2 := DocumentID("/foo/bar.pdf")
	if id1 != id2 {
		t.Errorf("same path should give same ID: %q vs %q", id1, id2)
	}
	if !strings.HasPrefix(id1, prefix) {
		t.Errorf("ID should have prefix %q: got %q", prefix, id1)
	}
	if len(id1) != len(prefix)+64 {
		t.Errorf("ID length = %d, want %d", len(id1), len(prefix)+64)
	}
}

func TestDocumentID_differentPaths(t *testing.T) {
	if DocumentID("/foo/bar.pdf") == DocumentID("/foo/baz.pdf") {
		t.Error("different paths should give different IDs")
	}
}

func TestDocumentID_normalized(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"/foo/bar", "/foo/bar/"},
		{"/foo/bar", "/foo/./bar"},
		{"guide.pdf", "./guide.pdf"},
	}
	for _, tt := range tests {
		if DocumentID(tt.a) != DocumentID(tt.b) {
			t.Errorf("DocumentID(%q) != DocumentID(%q)", tt.a, tt.b)
		}
	}
}

func TestDocumentID_relativeMatchesAbsolute(t *testing.T) {
	abs, err := filepath.Abs("guide.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := DocumentID("guide.pdf"), DocumentID(abs); got != want {
		t.Errorf("DocumentID(relative) = %q, want %q", got, want)
	}
}
