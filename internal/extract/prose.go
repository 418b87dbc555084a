package extract

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseTagger runs the statistical entity recogniser bundled with prose.
type ProseTagger struct{}

func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

func (t *ProseTagger) Tag(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	found := doc.Entities()
	entities := make([]Entity, 0, len(found))
	for _, ent := range found {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return entities, nil
}
