// Package extract derives candidate contact fields from resume text.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const (
	// NotFound is how a missing field is rendered in reports.
	NotFound = "Not found"
	// LabelPerson is the entity label of person names.
	LabelPerson = "PERSON"
)

var (
	// Only Gmail addresses are recognised.
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@gmail\.com`)
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[\s\-]?)?(?:\(?\d{2,4}\)?[\s\-]?)?\d{6,10}\b`)
)

// Field is an optionally present extracted value.
type Field struct {
	Value string
	Found bool
}

// Present wraps a located value.
func Present(value string) Field {
	return Field{Value: value, Found: true}
}

func (f Field) String() string {
	if !f.Found {
		return NotFound
	}
	return f.Value
}

// Candidate holds the fields parsed out of a resume.
type Candidate struct {
	Name  Field
	Email Field
	Phone Field
}

// Entity is a labelled span produced by a Tagger.
type Entity struct {
	Text  string `mapstructure:"text"`
	Label string `mapstructure:"label"`
}

// Tagger recognises named entities in free text, in document order.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Entity, error)
}

// Extractor pulls name, email and phone out of resume text.
type Extractor struct {
	tagger Tagger
}

func New(tagger Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract runs all three field extractions over the same text.
// Tagger failures are returned; a missing field is not an error.
func (e *Extractor) Extract(ctx context.Context, text string) (Candidate, error) {
	name, err := e.Name(ctx, text)
	if err != nil {
		return Candidate{}, err
	}

	return Candidate{
		Name:  name,
		Email: Email(text),
		Phone: Phone(text),
	}, nil
}

// Name returns the first entity tagged as a person.
func (e *Extractor) Name(ctx context.Context, text string) (Field, error) {
	if strings.TrimSpace(text) == "" {
		return Field{}, nil
	}
	if e.tagger == nil {
		return Field{}, fmt.Errorf("entity tagger is not configured")
	}

	entities, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return Field{}, fmt.Errorf("tag entities: %w", err)
	}

	for _, entity := range entities {
		if entity.Label != LabelPerson {
			continue
		}
		if name := strings.TrimSpace(entity.Text); name != "" {
			return Present(name), nil
		}
	}

	return Field{}, nil
}

// Email returns the first Gmail address in text.
func Email(text string) Field {
	return firstMatch(emailPattern, text)
}

// Phone returns the first phone-number shaped run of digits in text.
func Phone(text string) Field {
	return firstMatch(phonePattern, text)
}

func firstMatch(re *regexp.Regexp, text string) Field {
	match := re.FindString(text)
	if match == "" {
		return Field{}
	}
	return Present(match)
}
