package storage

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/qepting91/job-feed/internal/domain"
)

// LoadSnapshot reads an NDJSON snapshot. Lines that do not decode are skipped.
func LoadSnapshot(path string) ([]domain.JobPosting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	postings := []domain.JobPosting{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var p domain.JobPosting
		if err := json.Unmarshal(scanner.Bytes(), &p); err == nil {
			postings = append(postings, p)
		}
	}
	return postings, scanner.Err()
}
