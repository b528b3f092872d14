package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qepting91/job-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.csv")
	content := "\uFEFFkeyword,notes\nDriver, fleet\n  Night Shift  \n\n,empty\nCOOK\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"driver", "night shift", "cook"}, got)
}

func TestLoadKeywordsMissing(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestMatchKeywords(t *testing.T) {
	p := domain.JobPosting{Title: "Delivery Driver", CompanyName: "Swift Logistics", JobType: "Night Shift"}

	assert.Equal(t, []string{"driver", "night shift"}, MatchKeywords(p, []string{"driver", "cook", "night shift"}))
	assert.Empty(t, MatchKeywords(p, []string{"nurse"}))
	assert.Empty(t, MatchKeywords(p, nil))
}
