package pipeline

import (
	"context"
	"time"

	"cartload/internal/source"
	"cartload/internal/transform"
	"cartload/internal/warehouse"
	"cartload/pkg/models"
)

// Options controls which stages a run executes.
type Options struct {
	SkipViews bool

	// OnStage, when set, is called as each stage begins. Used by the CLI to
	// drive progress output; the pipeline itself never prints.
	OnStage func(name string)
}

// StageCount reports how many stages Run announces through OnStage for these
// options. Progress displays size themselves from it.
func (o Options) StageCount() int {
	if o.SkipViews {
		return 8
	}
	return 9
}

// Summary reports what one pipeline run did.
type Summary struct {
	Audits   []source.Audit
	Load     *warehouse.LoadResult
	Views    int
	Duration time.Duration
}

// Warehouse is the slice of warehouse.Service the pipeline drives.
type Warehouse interface {
	Connect() error
	Rebuild(ctx context.Context) error
	Load(ctx context.Context, ds *models.Dataset) (*warehouse.LoadResult, error)
	CreateViews(ctx context.Context) error
}

// Runner wires the fetch, transform, and warehouse layers into one run.
type Runner struct {
	fetcher *source.Fetcher
	service Warehouse
	opts    Options
}

// NewRunner creates a pipeline runner.
func NewRunner(service Warehouse, opts Options) *Runner {
	return &Runner{
		fetcher: source.NewFetcher(),
		service: service,
		opts:    opts,
	}
}

func (r *Runner) stage(name string) {
	if r.opts.OnStage != nil {
		r.opts.OnStage(name)
	}
}

// Run executes the full pipeline: fetch the three sources, audit them, stage
// the dataset, rebuild the target schema, load it, and create the analytical
// views. The first error aborts the run; the target database is only touched
// once every source has fetched and staged cleanly.
func (r *Runner) Run(ctx context.Context, sources models.Sources) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	r.stage("Fetching invoices")
	invoices, err := r.fetcher.Fetch(ctx, "invoice", sources.Invoices)
	if err != nil {
		return nil, err
	}

	r.stage("Fetching order leads")
	orderLeads, err := r.fetcher.Fetch(ctx, "orders", sources.OrderLeads)
	if err != nil {
		return nil, err
	}

	r.stage("Fetching sales team")
	salesTeam, err := r.fetcher.Fetch(ctx, "salesteam", sources.SalesTeam)
	if err != nil {
		return nil, err
	}

	r.stage("Auditing sources")
	summary.Audits = []source.Audit{
		invoices.Audit(),
		orderLeads.Audit(),
		salesTeam.Audit(),
	}

	r.stage("Staging dataset")
	dataset, err := transform.Stage(invoices, orderLeads, salesTeam, start)
	if err != nil {
		return nil, err
	}

	r.stage("Connecting to MySQL")
	if err := r.service.Connect(); err != nil {
		return nil, err
	}

	r.stage("Rebuilding schema")
	if err := r.service.Rebuild(ctx); err != nil {
		return nil, err
	}

	r.stage("Loading tables")
	loadResult, err := r.service.Load(ctx, dataset)
	if err != nil {
		return nil, err
	}
	summary.Load = loadResult

	if !r.opts.SkipViews {
		r.stage("Creating views")
		if err := r.service.CreateViews(ctx); err != nil {
			return nil, err
		}
		summary.Views = len(warehouse.Views)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}
