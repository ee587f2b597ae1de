// Package normalize turns loosely shaped job records from the upstream API
// into canonical domain.Job values. It never fails: every missing field
// degrades to a sentinel.
package normalize

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"jobfinder-engine/internal/domain"
)

const (
	NoTitle              = "No Title"
	UnknownCompany       = "Unknown Company"
	SalaryNegotiable     = "Negotiable"
	SalaryNotSpecified   = "Salary not specified"
	LocationNotSpecified = "Location not specified"
)

var (
	titleRule = fieldRule{
		keys:     []string{"title", "job_title", "position"},
		sentinel: NoTitle,
	}
	companyRule = fieldRule{
		keys:     []string{"companyName", "company", "company_name", "employer"},
		sentinel: UnknownCompany,
	}
	salaryTextRule = fieldRule{
		keys: []string{"salary", "salary_range", "pay"},
	}
	locationRule = fieldRule{
		keys:     []string{"location", "city", "address"},
		sentinel: LocationNotSpecified,
	}
	logoRule = fieldRule{
		keys:       []string{"companyLogo", "logo", "company_logo", "image"},
		allowEmpty: true,
	}
)

type Options struct {
	// SalarySentinel replaces a missing salary. Defaults to SalaryNegotiable.
	SalarySentinel string
}

type Normalizer struct {
	opts Options
}

func New(opts Options) *Normalizer {
	if strings.TrimSpace(opts.SalarySentinel) == "" {
		opts.SalarySentinel = SalaryNegotiable
	}
	return &Normalizer{opts: opts}
}

// Normalize maps one raw record, found at index within its batch, to a Job.
func (n *Normalizer) Normalize(rec map[string]any, index int) domain.Job {
	if rec == nil {
		rec = map[string]any{}
	}

	j := domain.Job{
		Title:    resolveOr(rec, titleRule),
		Company:  resolveOr(rec, companyRule),
		Salary:   n.salary(rec),
		Location: location(rec),
	}
	if logo, ok := resolve(rec, logoRule); ok {
		j.Logo = &logo
	}
	j.ID = JobID(j.Company, j.Title, index)
	return j
}

// NormalizeAll normalizes a batch, passing each record's position as its index.
func (n *Normalizer) NormalizeAll(recs []map[string]any) []domain.Job {
	out := make([]domain.Job, 0, len(recs))
	for i, rec := range recs {
		out = append(out, n.Normalize(rec, i))
	}
	return out
}

func (n *Normalizer) salary(rec map[string]any) string {
	lo, hasMin := number(rec, "minSalary")
	hi, hasMax := number(rec, "maxSalary")
	cur, hasCur := nonEmptyString(rec, "currency")

	switch {
	case hasMin && hasMax && hasCur:
		return cur + " " + FormatAmount(lo) + " - " + FormatAmount(hi)
	case hasMin && hasCur:
		return cur + " " + FormatAmount(lo)
	}

	if s, ok := resolve(rec, salaryTextRule); ok {
		return s
	}
	return n.opts.SalarySentinel
}

func location(rec map[string]any) string {
	if locs := stringList(rec, "locations"); len(locs) > 0 {
		return strings.Join(locs, ", ")
	}
	return resolveOr(rec, locationRule)
}

// FormatAmount renders v with thousands separators. Whole amounts print
// without decimals; fractional ones keep at most two.
func FormatAmount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 2)
}
