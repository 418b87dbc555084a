package storage

import (
	"context"
	"fmt"

	"github.com/spigell/resume-screener/internal/document"
)

// Router reads local files from disk and s3:// URIs from the object store.
type Router struct {
	objects *S3
}

// NewRouter returns a Router. With a nil objects store, s3:// sources fail.
func NewRouter(objects *S3) *Router {
	return &Router{objects: objects}
}

func (r *Router) Read(ctx context.Context, source string) (*document.Document, error) {
	if !IsObjectURI(source) {
		return document.ReadFile(source)
	}

	if r.objects == nil {
		return nil, &document.ReadError{Source: source, Cause: fmt.Errorf("object storage is not configured")}
	}

	return r.objects.Read(ctx, source)
}
