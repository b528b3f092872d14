package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qepting91/job-feed/internal/domain"
	"github.com/qepting91/job-feed/internal/storage"
)

const topLocalities = 10

// NewHandler serves charts over the snapshot at dataFile plus /metrics
func NewHandler(dataFile string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		postings, err := storage.LoadSnapshot(dataFile)
		if err != nil {
			logger.Warn("snapshot unavailable", "path", dataFile, "error", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		for _, render := range []func() error{
			func() error { return jobTypePie(postings).Render(w) },
			func() error { return localityBar(postings).Render(w) },
		} {
			if err := render(); err != nil {
				logger.Error("chart render failed", "error", err)
				return
			}
		}
	})
	return mux
}

func jobTypePie(postings []domain.JobPosting) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Job Types", Subtitle: postingCount(postings)}),
		charts.WithThemeOpts(opts.Theme{Theme: types.ThemeWesteros}),
	)

	var items []opts.PieData
	for _, c := range Tally(postings, func(p domain.JobPosting) domain.FlexString { return p.JobType }) {
		items = append(items, opts.PieData{Name: c.Name, Value: c.N})
	}
	pie.AddSeries("Postings", items)
	return pie
}

func localityBar(postings []domain.JobPosting) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Localities"}))

	counts := Top(Tally(postings, func(p domain.JobPosting) domain.FlexString { return p.Locality }), topLocalities)
	var barX []string
	var barY []opts.BarData
	for _, c := range counts {
		barX = append(barX, c.Name)
		barY = append(barY, opts.BarData{Value: c.N})
	}
	bar.SetXAxis(barX).AddSeries("Postings", barY)
	return bar
}

func postingCount(postings []domain.JobPosting) string {
	withGroup := 0
	for _, p := range postings {
		if p.WhatsAppLink != "" {
			withGroup++
		}
	}
	return fmt.Sprintf("%d postings, %d with a WhatsApp group", len(postings), withGroup)
}

// StartServer serves the dashboard until ctx is cancelled
func StartServer(ctx context.Context, dataFile, port string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewHandler(dataFile, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
