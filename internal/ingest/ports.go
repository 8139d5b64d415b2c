package ingest

import (
	"context"

	"holidayapi/internal/platform/github"
)

// ContentSource is the slice of the GitHub client the sync cycle needs.
type ContentSource interface {
	ListContents(ctx context.Context, repo github.Repo) ([]github.Entry, error)
	Fetch(ctx context.Context, url string) ([]byte, error)
	MirrorURLs(repo github.Repo, year int) []string
}
