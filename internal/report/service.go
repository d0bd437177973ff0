package report

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/herdstats/internal/adapters/otel"
	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/ports"
)

// Page render outcomes reported to metrics.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Options configures a Service.
type Options struct {
	UnknownBreedID int
	Metrics        ports.MetricsExporter
	Logger         *zap.Logger
}

// Service computes dashboard pages. Each call issues its queries one after
// another on the caller's goroutine; nothing is cached between calls.
type Service struct {
	production     ports.ProductionRepository
	lookups        ports.LookupRepository
	unknownBreedID int
	metrics        ports.MetricsExporter
	logger         *zap.Logger
}

func NewService(production ports.ProductionRepository, lookups ports.LookupRepository, opts Options) *Service {
	if opts.Metrics == nil {
		opts.Metrics = otel.NewNoOpExporter()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		production:     production,
		lookups:        lookups,
		unknownBreedID: opts.UnknownBreedID,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
	}
}

// Render dispatches to the page method for kind.
func (s *Service) Render(ctx context.Context, kind Kind, req Request) (*Page, error) {
	switch kind {
	case KindYearly:
		return s.Yearly(ctx, req)
	case KindLactation:
		return s.Lactation(ctx, req)
	case KindClassification:
		return s.Classification(ctx, req)
	case KindMonthly:
		return s.Monthly(ctx, req)
	default:
		return nil, fmt.Errorf("unknown page %q", kind)
	}
}

// Lookups returns every option list.
func (s *Service) Lookups(ctx context.Context) (*Lookups, error) {
	breeds, err := s.lookups.Breeds(ctx)
	if err != nil {
		return nil, err
	}
	years, err := s.lookups.Years(ctx)
	if err != nil {
		return nil, err
	}
	areas, err := s.lookups.Areas(ctx)
	if err != nil {
		return nil, err
	}
	return &Lookups{Breeds: breeds, Years: years, Areas: areas}, nil
}

// Lookups bundles the lookup tables.
type Lookups struct {
	Breeds []domain.Breed `json:"breeds"`
	Years  []int          `json:"years"`
	Areas  []domain.Area  `json:"areas"`
}

// begin loads the lookups the page needs, builds the form and resolves the
// filter. ok is false when validation stopped the page; the returned page
// then carries the notice.
func (s *Service) begin(ctx context.Context, kind Kind, req Request) (*Page, domain.FilterSelection, bool, error) {
	breeds, err := s.lookups.Breeds(ctx)
	if err != nil {
		return nil, domain.FilterSelection{}, false, err
	}
	var years []int
	if kind.fields().Has(domain.UsesYear) {
		if years, err = s.lookups.Years(ctx); err != nil {
			return nil, domain.FilterSelection{}, false, err
		}
	}

	page := &Page{Kind: kind, Title: kind.Title(), Form: buildForm(kind, req, breeds, years)}

	sel, err := domain.NewResolver(breeds, s.unknownBreedID).Resolve(page.Form.Input())
	if err != nil {
		var rangeErr *domain.RangeError
		switch {
		case errors.As(err, &rangeErr):
			page.Notice = &Notice{Level: LevelError, Message: rangeErr.Error()}
		case errors.Is(err, domain.ErrUnknownBreed):
			page.Notice = &Notice{Level: LevelWarning, Message: "Please choose a valid breed."}
		default:
			return nil, domain.FilterSelection{}, false, err
		}
		return page, sel, false, nil
	}
	return page, sel, true, nil
}

// finish records the page outcome and logs failures.
func (s *Service) finish(ctx context.Context, kind Kind, page *Page, err error) (*Page, error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
		s.logger.Error("page render failed", zap.String("page", string(kind)), zap.Error(err))
		err = fmt.Errorf("render %s page: %w", kind, err)
		page = nil
	case page.Notice != nil && page.Notice.Level == LevelWarning && page.Notice.Message == MessageNoData:
		outcome = OutcomeEmpty
	case page.Notice != nil:
		outcome = OutcomeInvalid
	}
	s.metrics.RecordPage(ctx, string(kind), outcome)
	return page, err
}

func noData(page *Page) *Page {
	page.Notice = &Notice{Level: LevelWarning, Message: MessageNoData}
	return page
}

// Yearly is the per-year production overview with totals.
func (s *Service) Yearly(ctx context.Context, req Request) (*Page, error) {
	page, err := s.yearly(ctx, req)
	return s.finish(ctx, KindYearly, page, err)
}

func (s *Service) yearly(ctx context.Context, req Request) (*Page, error) {
	page, sel, ok, err := s.begin(ctx, KindYearly, req)
	if err != nil || !ok {
		return page, err
	}

	rows, err := s.production.YearlyStats(ctx, sel)
	if err != nil {
		return nil, err
	}
	totals, err := s.production.Totals(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return noData(page), nil
	}
	if totals == nil {
		totals = &domain.Totals{}
	}

	page.Summary = []Indicator{
		{Label: "Average milk", Value: totals.AvgMilk, Unit: "kg"},
		{Label: "STD milk", Value: totals.StdMilk, Unit: "kg"},
		{Label: "Average lactation days", Value: totals.AvgDays, Unit: "days"},
		{Label: "STD lactation days", Value: totals.StdDays, Unit: "days"},
		{Label: "Total births", Value: float64(totals.TotalBirths)},
		{Label: "STD births", Value: totals.StdBirths},
		{Label: "Average polytocy", Value: totals.AvgPoly},
		{Label: "Number of years", Value: float64(totals.TotalYears)},
	}
	page.Charts = yearlyCharts(rows)
	page.Data = periodTable("Year", rows, nil)
	return page, nil
}

// Lactation breaks production down by lactation period.
func (s *Service) Lactation(ctx context.Context, req Request) (*Page, error) {
	page, err := s.periodPage(ctx, KindLactation, req, s.production.LactationStats)
	return s.finish(ctx, KindLactation, page, err)
}

// Monthly breaks production down by birth month.
func (s *Service) Monthly(ctx context.Context, req Request) (*Page, error) {
	page, err := s.periodPage(ctx, KindMonthly, req, s.production.MonthlyStats)
	return s.finish(ctx, KindMonthly, page, err)
}

func (s *Service) periodPage(ctx context.Context, kind Kind, req Request, load func(context.Context, domain.FilterSelection) ([]domain.PeriodStats, error)) (*Page, error) {
	page, sel, ok, err := s.begin(ctx, kind, req)
	if err != nil || !ok {
		return page, err
	}

	rows, err := load(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return noData(page), nil
	}

	if kind == KindMonthly {
		page.Charts = monthlyCharts(rows)
		page.Data = periodTable("Birth month", rows, monthLabel)
	} else {
		page.Charts = lactationCharts(rows)
		page.Data = periodTable("Lactation period", rows, nil)
	}
	return page, nil
}

// Classification is the milk yield class histogram with a fitted curve.
func (s *Service) Classification(ctx context.Context, req Request) (*Page, error) {
	page, err := s.classification(ctx, req)
	return s.finish(ctx, KindClassification, page, err)
}

func (s *Service) classification(ctx context.Context, req Request) (*Page, error) {
	page, sel, ok, err := s.begin(ctx, KindClassification, req)
	if err != nil || !ok {
		return page, err
	}

	rows, err := s.production.YieldClasses(ctx, sel)
	if err != nil {
		return nil, err
	}
	bins := domain.Bins(rows)

	var total int64
	midpoints := make([]float64, len(bins))
	counts := make([]int64, len(bins))
	for i, b := range bins {
		midpoints[i] = b.Midpoint
		counts[i] = b.Count
		total += b.Count
	}
	if total == 0 {
		return noData(page), nil
	}

	fit, fitted := domain.FitGaussian(midpoints, counts)
	if !fitted {
		s.logger.Debug("gaussian curve omitted", zap.Int("bins", len(bins)), zap.Int64("animals", total))
	}

	page.Summary = []Indicator{{Label: "Animals", Value: float64(total)}}
	if fitted {
		page.Summary = append(page.Summary,
			Indicator{Label: "Peak class midpoint", Value: fit.Peak, Unit: "kg"},
			Indicator{Label: "Spread (STD)", Value: domain.Round2(fit.Std), Unit: "kg"},
		)
	}
	page.Charts = append(page.Charts, classificationChart(bins, fit, fitted))
	page.Data = classTable(rows)
	return page, nil
}

func periodTable(keyTitle string, rows []domain.PeriodStats, keyLabel func(int) string) *Table {
	t := &Table{
		Columns: []string{keyTitle, "Avg days", "Avg milk (kg)", "STD milk", "STD days", "STD births", "Births", "Avg births"},
		Rows:    make([][]any, len(rows)),
	}
	for i, r := range rows {
		var key any = r.Key
		if keyLabel != nil {
			key = keyLabel(r.Key)
		}
		t.Rows[i] = []any{key, r.AvgDays, r.AvgMilk, r.StdMilk, r.StdDays, r.StdBirths, r.CountBirths, r.AvgBirths}
	}
	return t
}

func classTable(rows []domain.ClassRow) *Table {
	t := &Table{
		Columns: []string{"Class", "Range (kg)", "Animals", "Avg days", "Avg milk (kg)", "STD milk (kg)"},
		Rows:    make([][]any, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = []any{r.Index, domain.BinLabel(r.Index), r.Count, r.AvgDays, r.AvgMilkKg, r.StdMilkKg}
	}
	return t
}
