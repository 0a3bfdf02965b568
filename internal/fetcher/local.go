package fetcher

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// LocalFetcher reads saved match pages from disk. The url argument is a
// filesystem path; the context is accepted to satisfy Fetcher but local
// reads are not cancellable.
type LocalFetcher struct{}

func (LocalFetcher) FetchMatchPage(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: read %s", path)
	}
	return string(data), nil
}
