package keywords

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

type fakeAssistant struct {
	content string
	err     error
	calls   int
}

func (f *fakeAssistant) ExtractKeywords(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.content, f.err
}

func TestExtract_AssistantSuccess(t *testing.T) {
	fa := &fakeAssistant{content: `["vendor", "payment", "invoice"]`}
	s := New(fa, zap.NewNop())

	got := s.Extract(context.Background(), "vendor payment tables")
	want := []string{"vendor", "payment", "invoice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
	if fa.calls != 1 {
		t.Errorf("assistant called %d times, want 1", fa.calls)
	}
}

func TestExtract_AssistantTruncatesAndCleans(t *testing.T) {
	fa := &fakeAssistant{content: `["a", "  ", "b", "c", "d", "e", "f"]`}
	s := New(fa, zap.NewNop())

	got := s.Extract(context.Background(), "query")
	want := []string{"a", "b", "c", "d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestExtract_FallbackOnAssistantError(t *testing.T) {
	fa := &fakeAssistant{err: errors.New("timeout")}
	s := New(fa, zap.NewNop())

	got := s.Extract(context.Background(), "vendor payment")
	if !reflect.DeepEqual(got, []string{"vendor", "payment"}) {
		t.Errorf("expected deterministic fallback, got %v", got)
	}
}

func TestExtract_FallbackOnInvalidJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"prose answer", "Here are your keywords: vendor, payment"},
		{"empty array", "[]"},
		{"all blank", `["", "  "]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeAssistant{content: tt.content}, zap.NewNop())
			got := s.Extract(context.Background(), "vendor payment")
			if !reflect.DeepEqual(got, []string{"vendor", "payment"}) {
				t.Errorf("expected deterministic fallback, got %v", got)
			}
		})
	}
}

func TestExtract_NilAssistant(t *testing.T) {
	s := New(nil, zap.NewNop())
	got := s.Extract(context.Background(), "vendor payment")
	if !reflect.DeepEqual(got, []string{"vendor", "payment"}) {
		t.Errorf("nil assistant should use the fallback, got %v", got)
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "migration terms first",
			query: "help with ECC migration planning",
			want:  []string{"migration", "ecc", "help", "with", "planning"},
		},
		{
			name:  "dedup across passes",
			query: "migration migration tables",
			want:  []string{"migration", "tables"},
		},
		{
			name:  "short tokens dropped",
			query: "fi gl totals",
			want:  []string{"totals"},
		},
		{
			name:  "only short tokens falls back to whole query",
			query: "fi gl",
			want:  []string{"fi gl"},
		},
		{
			name:  "truncated to five",
			query: "vendor payment invoice posting clearing reconciliation",
			want:  []string{"vendor", "payment", "invoice", "posting", "clearing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fallback(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fallback(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFallback_Empty(t *testing.T) {
	if got := Fallback("   "); got != nil {
		t.Errorf("blank query should yield nil, got %v", got)
	}
}
