package extract

import (
	"context"
	"errors"
	"testing"
)

type stubTagger struct {
	entities []Entity
	err      error
	calls    int
}

func (s *stubTagger) Tag(_ context.Context, _ string) ([]Entity, error) {
	s.calls++
	return s.entities, s.err
}

func TestExtractorName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entities []Entity
		expect   Field
	}{
		{
			name:   "no entities",
			expect: Field{},
		},
		{
			name:     "first person wins",
			entities: []Entity{{Text: "Acme", Label: "ORGANIZATION"}, {Text: "Jane Doe", Label: LabelPerson}, {Text: "John Roe", Label: LabelPerson}},
			expect:   Present("Jane Doe"),
		},
		{
			name:     "only other labels",
			entities: []Entity{{Text: "Berlin", Label: "GPE"}},
			expect:   Field{},
		},
		{
			name:     "blank person skipped",
			entities: []Entity{{Text: "  ", Label: LabelPerson}, {Text: " Ann Lee ", Label: LabelPerson}},
			expect:   Present("Ann Lee"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New(&stubTagger{entities: tt.entities})
			got, err := e.Name(context.Background(), "some resume text")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestExtractorSkipsTaggerForEmptyText(t *testing.T) {
	tagger := &stubTagger{err: errors.New("must not be called")}
	e := New(tagger)

	candidate, err := e.Extract(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tagger.calls != 0 {
		t.Fatalf("expected tagger not to be called, got %d calls", tagger.calls)
	}
	if candidate.Name.Found || candidate.Email.Found || candidate.Phone.Found {
		t.Fatalf("expected all fields to be missing, got %+v", candidate)
	}
	if candidate.Name.String() != NotFound {
		t.Fatalf("expected %q, got %q", NotFound, candidate.Name.String())
	}
}

func TestExtractorPropagatesTaggerError(t *testing.T) {
	boom := errors.New("model unavailable")
	e := New(&stubTagger{err: boom})

	_, err := e.Extract(context.Background(), "Jane Doe")
	if !errors.Is(err, boom) {
		t.Fatalf("expected tagger error, got %v", err)
	}
}

func TestExtractorWithoutTagger(t *testing.T) {
	_, err := New(nil).Extract(context.Background(), "Jane Doe")
	if err == nil {
		t.Fatal("expected error when tagger is missing")
	}
}

func TestExtract(t *testing.T) {
	text := "Jane Doe\njane.doe+jobs@gmail.com\nPhone: 9876543210\nSkills: Go, HTML"
	e := New(&stubTagger{entities: []Entity{{Text: "Jane Doe", Label: LabelPerson}}})

	candidate, err := e.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if candidate.Name.String() != "Jane Doe" {
		t.Fatalf("unexpected name: %q", candidate.Name)
	}
	if candidate.Email.String() != "jane.doe+jobs@gmail.com" {
		t.Fatalf("unexpected email: %q", candidate.Email)
	}
	if candidate.Phone.String() != "9876543210" {
		t.Fatalf("unexpected phone: %q", candidate.Phone)
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect Field
	}{
		{name: "gmail", input: "contact: john_smith.99@gmail.com, web", expect: Present("john_smith.99@gmail.com")},
		{name: "first of many", input: "a@gmail.com b@gmail.com", expect: Present("a@gmail.com")},
		{name: "other domain ignored", input: "jane@example.com", expect: Field{}},
		{name: "domain is case sensitive", input: "jane@GMAIL.COM", expect: Field{}},
		{name: "none", input: "no address here", expect: Field{}},
		{name: "empty", input: "", expect: Field{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Email(tt.input); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect Field
	}{
		{name: "plain digits", input: "Phone: 9876543210", expect: Present("9876543210")},
		{name: "country and area code", input: "Tel 44 20 12345678 (mobile)", expect: Present("44 20 12345678")},
		{name: "parenthesized area code", input: "call (555) 1234567", expect: Present("555) 1234567")},
		{name: "hyphenated", input: "mobile: 91-22-3456789", expect: Present("91-22-3456789")},
		{name: "too short", input: "room 12345", expect: Field{}},
		{name: "years are not phones", input: "2019 - 2021", expect: Field{}},
		{name: "empty", input: "", expect: Field{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Phone(tt.input); got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestProseTaggerHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProseTagger().Tag(ctx, "Jane Doe"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProseTaggerLabels(t *testing.T) {
	entities, err := NewProseTagger().Tag(context.Background(), "Jane Doe moved to Berlin to work at Google.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entity := range entities {
		if entity.Text == "" || entity.Label == "" {
			t.Fatalf("entity without text or label: %+v", entity)
		}
	}
}
