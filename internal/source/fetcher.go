package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"cartload/pkg/errors"
)

// Fetcher retrieves raw delimited datasets from http(s) URLs or local files.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with a default HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Fetch retrieves the dataset at location and decodes it into a RawTable.
// The first record is the header row.
func (f *Fetcher) Fetch(ctx context.Context, name, location string) (*RawTable, error) {
	var reader io.ReadCloser

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSourceUnavailable, "invalid source URL").
				WithContext("table", name).
				WithContext("location", location)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSourceUnavailable,
				fmt.Sprintf("failed to fetch %s dataset", name)).
				WithContext("location", location).
				WithSuggestions("Check network connectivity", "Verify the source URL is still published")
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, errors.New(errors.ErrCodeSourceUnavailable,
				fmt.Sprintf("source returned HTTP %d", resp.StatusCode)).
				WithContext("table", name).
				WithContext("location", location)
		}
		reader = resp.Body
	} else {
		file, err := os.Open(location) // #nosec G304 - operator-supplied source path
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSourceUnavailable,
				fmt.Sprintf("failed to open %s dataset", name)).
				WithContext("location", location)
		}
		reader = file
	}
	defer reader.Close()

	return decode(name, reader)
}

func decode(name string, r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceFormat,
			fmt.Sprintf("failed to parse %s dataset", name))
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeSourceFormat, "dataset is empty").
			WithContext("table", name)
	}

	return NewRawTable(name, records[0], records[1:])
}
