package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qepting91/job-feed/internal/domain"
)

var mockLocalities = []string{"Andheri", "Koramangala", "Salt Lake", "Banjara Hills", "Sector 62"}

var mockJobTypes = []string{"Full Time", "Part Time", "Night Shift"}

// MockClient implements domain.Collector but returns fake postings
type MockClient struct {
	PageSize int
	Pages    int
	Latency  time.Duration
}

func NewMockClient() *MockClient {
	return &MockClient{PageSize: 10, Pages: 5, Latency: 300 * time.Millisecond}
}

func (mc *MockClient) FetchPage(ctx context.Context, page int) ([]domain.RawPosting, error) {
	// Simulate network latency so loading states are visible
	select {
	case <-time.After(mc.Latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if page > mc.Pages {
		return []domain.RawPosting{}, nil
	}

	postings := make([]domain.RawPosting, 0, mc.PageSize)
	for i := 0; i < mc.PageSize; i++ {
		id := (page-1)*mc.PageSize + i + 1
		p, err := mockPosting(id)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, nil
}

func mockPosting(id int) (domain.RawPosting, error) {
	rec := map[string]any{
		"id":            id,
		"title":         fmt.Sprintf("Delivery Executive #%d", id),
		"company_name":  "Simulated Logistics Pvt Ltd",
		"place":         "Mumbai",
		"salary":        fmt.Sprintf("₹%d - ₹%d", 12000+id*100, 18000+id*100),
		"job_type":      mockJobTypes[id%len(mockJobTypes)],
		"experience":    fmt.Sprintf("%d years", id%4),
		"qualification": "10th Pass",
		"vacancies":     id%7 + 1,
		"locality":      mockLocalities[id%len(mockLocalities)],
		"whatsapp_no":   fmt.Sprintf("91980000%04d", id),
		"contact_link":  "https://example.invalid/apply",
		"updated_on":    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour).Format(time.RFC3339),
	}
	// every third posting has a group invite
	if id%3 == 0 {
		rec["contact_preference"] = []map[string]any{
			{"type": "call", "value": rec["whatsapp_no"]},
			{"type": "whatsapp_link", "value": fmt.Sprintf("https://chat.whatsapp.com/mock%d", id)},
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var p domain.RawPosting
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return p, nil
}
