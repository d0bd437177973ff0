package report

import "github.com/emiliopalmerini/herdstats/internal/domain"

var lactationOptions = func() []int {
	opts := make([]int, 0, domain.MaxLactation-domain.MinLactation+1)
	for i := domain.MinLactation; i <= domain.MaxLactation; i++ {
		opts = append(opts, i)
	}
	return opts
}()

func orDefault(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// clampRange applies widget bounds to an ordered range. An inverted range is
// returned as given so validation reports it.
func clampRange(from, to, lo, hi int) domain.Range {
	if from > to {
		return domain.Range{From: from, To: to}
	}
	return domain.Range{From: domain.ClampInt(from, lo, hi), To: domain.ClampInt(to, lo, hi)}
}

// buildForm applies widget defaults and bounds to the raw request.
func buildForm(kind Kind, req Request, breeds []domain.Breed, years []int) Form {
	f := Form{Breeds: make([]string, len(breeds)), Breed: req.Breed}
	for i, b := range breeds {
		f.Breeds[i] = b.Name
	}
	if f.Breed == "" && len(f.Breeds) > 0 {
		f.Breed = f.Breeds[0]
	}

	fields := kind.fields()
	if fields.Has(domain.UsesLactation) {
		f.Lactations = lactationOptions
		r := clampRange(orDefault(req.LactFrom, domain.MinLactation), orDefault(req.LactTo, domain.MaxLactation),
			domain.MinLactation, domain.MaxLactation)
		f.Lactation = &r
	}
	if fields.Has(domain.UsesYear) {
		f.Years = years
		var first, last int
		if len(years) > 0 {
			first, last = years[0], years[len(years)-1]
		}
		f.Year = &domain.Range{From: orDefault(req.YearFrom, first), To: orDefault(req.YearTo, last)}
	}
	if fields.Has(domain.UsesMinDays) {
		d := domain.ClampInt(orDefault(req.MinDays, domain.DefaultMinDays), domain.MinDaysLower, domain.MinDaysUpper)
		f.MinDays = &d
	}
	return f
}
