package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/qepting91/job-feed/internal/domain"
)

// LoadKeywords reads the first column of a CSV with a header row, lowercased.
// Blank cells and malformed rows are skipped.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var kws []string
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil || line == 1 || len(rec) == 0 {
			continue
		}
		if kw := strings.ToLower(strings.TrimSpace(rec[0])); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws, nil
}

// MatchKeywords returns the keywords found in the posting's title, company or job type
func MatchKeywords(p domain.JobPosting, keywords []string) []string {
	text := strings.ToLower(strings.Join([]string{
		string(p.Title), string(p.CompanyName), string(p.JobType),
	}, " "))

	var hits []string
	for _, k := range keywords {
		if strings.Contains(text, k) {
			hits = append(hits, k)
		}
	}
	return hits
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
