// Package projector resolves stored expense, income and EMI records into the
// concrete set of entries effective for one calendar month. It is the single
// shared implementation behind the dashboard, calendar and reports views.
package projector

import (
	"errors"
	"fmt"
	"time"

	"github.com/rsharma/fintrack/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidPeriod is returned when the target month is out of range.
	ErrInvalidPeriod = errors.New("projector: month out of range")
	// ErrMalformedDate marks a record date that cannot be parsed.
	ErrMalformedDate = errors.New("projector: malformed date")
)

// Period identifies one calendar month.
type Period struct {
	Year  int
	Month int // 1-12
}

// NewPeriod validates year/month and builds a Period.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %d", ErrInvalidPeriod, month)
	}
	return Period{Year: year, Month: month}, nil
}

// Start returns the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period (inclusive).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Days returns the number of days in the period.
func (p Period) Days() int {
	return p.End().Day()
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// ProjectedExpense is an expense entry effective for a period. Synthetic
// entries are derived from an active EMI and are never persisted.
type ProjectedExpense struct {
	models.Expense
	Synthetic bool `json:"synthetic,omitempty"`
}

// Projection holds the effective entries for one period.
type Projection struct {
	Expenses []ProjectedExpense `json:"expenses"`
	Income   []models.Income    `json:"income"`
}

// Projector computes period projections. It is stateless apart from a logger
// for skipped records and a clock, injectable for tests.
type Projector struct {
	log *logrus.Logger
	now func() time.Time
}

// New creates a Projector. A nil clock means time.Now.
func New(log *logrus.Logger, now func() time.Time) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{log: log, now: now}
}

// Project computes the effective expense and income entries for the period.
//
// A record is included once if its own date falls inside the period, or if it
// recurs monthly (every period) or yearly (periods in the record's own year).
// A record matching more than one rule is still included exactly once. A
// recurring record matched outside its own month is re-dated onto the same
// day of the target month, clamped to the month's last day, so per-day
// totals see it. Active EMIs whose start month is not after the period each
// contribute one synthesized entry on their due day. Records with
// unparseable dates are skipped and logged, never fatal.
func (pr *Projector) Project(expenses []models.Expense, income []models.Income, emis []models.EMI, period Period) (Projection, error) {
	if period.Month < 1 || period.Month > 12 {
		return Projection{}, fmt.Errorf("%w: %d", ErrInvalidPeriod, period.Month)
	}

	out := Projection{
		Expenses: make([]ProjectedExpense, 0, len(expenses)+len(emis)),
		Income:   make([]models.Income, 0, len(income)),
	}

	seen := make(map[int64]bool, len(expenses))
	for _, e := range expenses {
		date, err := ParseDate(e.Date)
		if err != nil {
			pr.skip("expense", e.ID, e.Date)
			continue
		}
		effective, ok := pr.effectiveDate(e.Date, date, e.IsRecurring, e.RecurringType, period)
		if ok && !seen[e.ID] {
			seen[e.ID] = true
			e.Date = effective
			out.Expenses = append(out.Expenses, ProjectedExpense{Expense: e})
		}
	}

	for _, entry := range pr.projectEMIs(emis, period) {
		out.Expenses = append(out.Expenses, entry)
	}

	seenIncome := make(map[int64]bool, len(income))
	for _, in := range income {
		date, err := ParseDate(in.Date)
		if err != nil {
			pr.skip("income", in.ID, in.Date)
			continue
		}
		effective, ok := pr.effectiveDate(in.Date, date, in.IsRecurring, in.RecurringType, period)
		if ok && !seenIncome[in.ID] {
			seenIncome[in.ID] = true
			in.Date = effective
			out.Income = append(out.Income, in)
		}
	}

	return out, nil
}

// effectiveDate implements the inclusion rules shared by expenses and
// income. It returns the date the entry carries inside the period: the
// stored date for a one-time match, or the record's day of month remapped
// into the period (clamped to its last day) for a recurring match.
func (pr *Projector) effectiveDate(raw string, date time.Time, recurring bool, recurringType string, period Period) (string, bool) {
	// One-time inclusion: own date inside the period.
	if period.Contains(date) {
		return raw, true
	}
	if !recurring {
		return "", false
	}
	switch recurringType {
	case models.RecurringMonthly:
		// Monthly records recur indefinitely, forward and backward.
	case models.RecurringYearly:
		// Yearly records are active only in their original calendar year.
		if date.Year() != period.Year {
			return "", false
		}
	default:
		return "", false
	}
	day := date.Day()
	if day > period.Days() {
		day = period.Days()
	}
	return time.Date(period.Year, time.Month(period.Month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout), true
}

// projectEMIs synthesizes one virtual expense per EMI that is still active
// as of the wall-clock date and whose start month is not after the period.
func (pr *Projector) projectEMIs(emis []models.EMI, period Period) []ProjectedExpense {
	now := pr.now()
	entries := make([]ProjectedExpense, 0, len(emis))
	for _, emi := range emis {
		start, err := ParseDate(emi.StartDate)
		if err != nil {
			pr.skip("emi", emi.ID, emi.StartDate)
			continue
		}
		if RemainingMonths(emi, now) == 0 {
			continue
		}
		if start.Year() > period.Year || (start.Year() == period.Year && int(start.Month()) > period.Month) {
			continue
		}
		entries = append(entries, pr.synthesize(emi, period))
	}
	return entries
}

// synthesize builds the virtual entry for an EMI in the given period. The due
// day is clamped to the period's last day for short months.
func (pr *Projector) synthesize(emi models.EMI, period Period) ProjectedExpense {
	day := emi.DueDay
	if day > period.Days() {
		day = period.Days()
	}
	if day < 1 {
		day = 1
	}
	emiID := emi.ID
	return ProjectedExpense{
		Expense: models.Expense{
			UserID:        emi.UserID,
			Date:          time.Date(period.Year, time.Month(period.Month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout),
			Amount:        emi.Amount,
			Category:      fmt.Sprintf("EMI - %s", emi.Name),
			PaymentMode:   models.PaymentModeCreditCard,
			Note:          fmt.Sprintf("EMI payment due on day %d", emi.DueDay),
			EMIID:         &emiID,
			IsRecurring:   true,
			RecurringType: models.RecurringMonthly,
		},
		Synthetic: true,
	}
}

// RemainingMonths returns how many installments are left on an EMI as of the
// given date, floored at zero. Whole months are counted from the start month;
// the day of month is deliberately ignored. An EMI with an unparseable start
// date is treated as finished.
func RemainingMonths(emi models.EMI, asOf time.Time) int {
	start, err := ParseDate(emi.StartDate)
	if err != nil {
		return 0
	}
	elapsed := (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
	remaining := emi.TotalMonths - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (pr *Projector) skip(kind string, id int64, raw string) {
	if pr.log == nil {
		return
	}
	pr.log.WithFields(logrus.Fields{
		"record": kind,
		"id":     id,
		"date":   raw,
	}).Warn("Skipping record with malformed date")
}
