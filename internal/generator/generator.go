package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nao1215/loanqa/internal/model"
)

// Options configures a generation run.
type Options struct {
	// NumRecords is the number of records to produce.
	NumRecords int

	// Seed selects the random stream.
	Seed int64
}

// Generator draws synthetic loan application records.
type Generator struct {
	opts   Options
	logger *slog.Logger
}

// Option is a function that configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report progress.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator.
func New(opts Options, options ...Option) (*Generator, error) {
	if opts.NumRecords <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRecordCount, opts.NumRecords)
	}
	g := &Generator{opts: opts}
	for _, o := range options {
		o(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g, nil
}

// newRand returns the deterministic source for a seed.
func newRand(seed int64) *rand.Rand {
	s := uint64(seed) //nolint:gosec // the bit pattern is all we need
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Records draws the configured number of records.
// The context is checked between columns so a long run can be interrupted.
func (g *Generator) Records(ctx context.Context) ([]model.LoanApplication, error) {
	n := g.opts.NumRecords
	rng := newRand(g.opts.Seed)
	records := make([]model.LoanApplication, n)

	for i := range records {
		records[i].LoanID = model.LoanID(i + 1)
	}

	columns := []struct {
		name string
		fill func(r *model.LoanApplication)
	}{
		{model.ColGender, func(r *model.LoanApplication) { r.Gender = choice(rng, model.Genders) }},
		{model.ColMarried, func(r *model.LoanApplication) { r.Married = choice(rng, model.YesNo) }},
		{model.ColDependents, func(r *model.LoanApplication) { r.Dependents = choice(rng, model.DependentsBins) }},
		{model.ColEducation, func(r *model.LoanApplication) { r.Education = choice(rng, model.Educations) }},
		{model.ColSelfEmployed, func(r *model.LoanApplication) { r.SelfEmployed = choice(rng, model.YesNo) }},
		{model.ColApplicantIncome, func(r *model.LoanApplication) { r.ApplicantIncome = between(rng, model.IncomeRange) }},
		{model.ColCoapplicantIncome, func(r *model.LoanApplication) { r.CoapplicantIncome = between(rng, model.IncomeRange) }},
		{model.ColLoanAmount, func(r *model.LoanApplication) { r.LoanAmount = between(rng, model.LoanAmountRange) }},
		{model.ColLoanAmountTerm, func(r *model.LoanApplication) { r.LoanAmountTerm = choice(rng, model.LoanTerms) }},
		{model.ColCreditHistory, func(r *model.LoanApplication) { r.CreditHistory = choice(rng, model.CreditHistory) }},
		{model.ColPropertyArea, func(r *model.LoanApplication) { r.PropertyArea = choice(rng, model.PropertyAreas) }},
		{model.ColLoanStatus, func(r *model.LoanApplication) { r.LoanStatus = choice(rng, model.LoanStatuses) }},
		{model.ColFICOScore, func(r *model.LoanApplication) { r.FICOScore = between(rng, model.FICORange) }},
	}

	for _, col := range columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range records {
			col.fill(&records[i])
		}
		g.logger.Debug("column generated", "column", col.name, "records", n)
	}

	if n > 0 {
		g.logger.Debug("first record drawn", recordAttr(records[0]))
	}
	return records, nil
}

// recordAttr returns r as a log group keyed by column name.
// The logger masks the financial columns.
func recordAttr(r model.LoanApplication) slog.Attr {
	names := model.LoanColumns()
	cells := r.Cells()
	attrs := make([]any, len(names))
	for i, name := range names {
		attrs[i] = slog.String(name, cells[i].String())
	}
	return slog.Group("record", attrs...)
}

// Table draws the configured number of records and returns them as a table.
func (g *Generator) Table(ctx context.Context) (*model.Table, error) {
	records, err := g.Records(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewLoanTable(records)
}

// Generate is a convenience wrapper that creates a Generator and returns its table.
func Generate(ctx context.Context, opts Options) (*model.Table, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	return g.Table(ctx)
}

// choice returns a uniformly chosen element of values.
func choice[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

// between returns a uniform integer in the closed interval [r[0], r[1]].
func between(rng *rand.Rand, r [2]int64) int64 {
	return r[0] + rng.Int64N(r[1]-r[0]+1)
}
