package service

import (
	"fmt"
	"sort"

	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/projector"
	"github.com/rsharma/fintrack/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardData is the aggregate payload for the dashboard view.
type DashboardData struct {
	Stats          models.DashboardStats   `json:"stats"`
	ByCategory     []models.CategoryAmount `json:"by_category"`
	RecentExpenses []models.Expense        `json:"recent_expenses"`
	EMIs           []EMIView               `json:"emis"`
	Accounts       []models.PaymentAccount `json:"accounts"`
}

// CalendarData is the month view: the effective entries plus per-day totals.
type CalendarData struct {
	Year     int                          `json:"year"`
	Month    int                          `json:"month"`
	Days     []models.DayTotals           `json:"days"`
	Expenses []projector.ProjectedExpense `json:"expenses"`
	Income   []models.Income              `json:"income"`
}

// ReportData is the payload for the reports view over a month, quarter or year.
type ReportData struct {
	Period        string                     `json:"period"`
	StartDate     string                     `json:"start_date"`
	EndDate       string                     `json:"end_date"`
	TotalExpenses float64                    `json:"total_expenses"`
	TotalIncome   float64                    `json:"total_income"`
	Net           float64                    `json:"net"`
	ByCategory    []models.CategoryAmount    `json:"by_category"`
	ByPaymentMode []models.CategoryAmount    `json:"by_payment_mode"`
	EMIs          []models.EMISummary        `json:"emis"`
	MonthlyTrend  []models.MonthlyTrendPoint `json:"monthly_trend"`
}

// Dashboard assembles the dashboard payload. All-time totals come from the
// stored records; the monthly figures come from the current month's
// projection, so recurring records and active EMIs are counted.
func (s *Service) Dashboard(userID int64) (*DashboardData, error) {
	expenses, income, emis, accounts, err := s.fetchAll(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	period := projector.Period{Year: now.Year(), Month: int(now.Month())}
	proj, err := s.proj.Project(expenses, income, emis, period)
	if err != nil {
		return nil, err
	}

	var stats models.DashboardStats
	byCategory := make(map[string]float64)
	for _, e := range expenses {
		stats.TotalExpenses += e.Amount
		byCategory[e.Category] += e.Amount
	}
	for _, in := range income {
		stats.TotalIncome += in.Amount
	}
	views := make([]EMIView, len(emis))
	for i, emi := range emis {
		left := projector.RemainingMonths(emi, now)
		views[i] = EMIView{EMI: emi, MonthsLeft: left}
		if left > 0 {
			byCategory[fmt.Sprintf("EMI - %s", emi.Name)] += emi.Amount
		}
	}
	stats.NetAmount = stats.TotalIncome - stats.TotalExpenses
	stats.MonthlyExpenses = projector.MonthlyExpenseTotal(proj)
	stats.MonthlyIncome = projector.MonthlyIncomeTotal(proj)
	stats.MonthlyNet = stats.MonthlyIncome - stats.MonthlyExpenses

	// ListExpenses orders newest first.
	recent := expenses
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardData{
		Stats:          stats,
		ByCategory:     sortedAmounts(byCategory),
		RecentExpenses: recent,
		EMIs:           views,
		Accounts:       accounts,
	}, nil
}

// Calendar projects one month and attaches totals for every day of it.
func (s *Service) Calendar(userID int64, year, month int) (*CalendarData, error) {
	period, err := projector.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}

	expenses, income, emis, _, err := s.fetchAll(userID)
	if err != nil {
		return nil, err
	}
	proj, err := s.proj.Project(expenses, income, emis, period)
	if err != nil {
		return nil, err
	}

	days := make([]models.DayTotals, period.Days())
	for i := range days {
		date := period.Start().AddDate(0, 0, i).Format(projector.DateLayout)
		exp := projector.ExpenseTotalForDate(proj.Expenses, date)
		inc := projector.IncomeTotalForDate(proj.Income, date)
		days[i] = models.DayTotals{
			Date:     date,
			Expenses: exp,
			Income:   inc,
			Net:      inc - exp,
		}
	}

	return &CalendarData{
		Year:     year,
		Month:    month,
		Days:     days,
		Expenses: proj.Expenses,
		Income:   proj.Income,
	}, nil
}

// Report aggregates projections over a month, the quarter containing it, or
// the whole year. Recurring records and active EMIs count once per covered
// month, matching the calendar view.
func (s *Service) Report(userID int64, year, month int, periodKind string) (*ReportData, error) {
	if periodKind == "" {
		periodKind = "month"
	}
	if _, err := projector.NewPeriod(year, month); err != nil {
		return nil, err
	}

	var months []projector.Period
	switch periodKind {
	case "month":
		months = []projector.Period{{Year: year, Month: month}}
	case "quarter":
		first := ((month-1)/3)*3 + 1
		for m := first; m < first+3; m++ {
			months = append(months, projector.Period{Year: year, Month: m})
		}
	case "year":
		for m := 1; m <= 12; m++ {
			months = append(months, projector.Period{Year: year, Month: m})
		}
	default:
		return nil, fmt.Errorf("invalid report period: %s", periodKind)
	}

	expenses, income, emis, _, err := s.fetchAll(userID)
	if err != nil {
		return nil, err
	}

	report := &ReportData{
		Period:    periodKind,
		StartDate: months[0].Start().Format(projector.DateLayout),
		EndDate:   months[len(months)-1].End().Format(projector.DateLayout),
	}
	byCategory := make(map[string]float64)
	byMode := make(map[string]float64)
	for _, p := range months {
		proj, err := s.proj.Project(expenses, income, emis, p)
		if err != nil {
			return nil, err
		}
		exp := projector.MonthlyExpenseTotal(proj)
		inc := projector.MonthlyIncomeTotal(proj)
		report.TotalExpenses += exp
		report.TotalIncome += inc
		for name, amount := range projector.AggregateByCategory(proj.Expenses) {
			byCategory[name] += amount
		}
		for name, amount := range projector.AggregateByPaymentMode(proj.Expenses) {
			byMode[name] += amount
		}
		report.MonthlyTrend = append(report.MonthlyTrend, models.MonthlyTrendPoint{
			Month:    p.Start().Format("Jan"),
			Expenses: exp,
			Income:   inc,
		})
	}
	report.Net = report.TotalIncome - report.TotalExpenses
	report.ByCategory = sortedAmounts(byCategory)
	report.ByPaymentMode = sortedAmounts(byMode)

	now := s.now()
	for _, emi := range emis {
		if left := projector.RemainingMonths(emi, now); left > 0 {
			report.EMIs = append(report.EMIs, models.EMISummary{
				Name:       emi.Name,
				Amount:     emi.Amount,
				DueDay:     emi.DueDay,
				MonthsLeft: left,
			})
		}
	}

	return report, nil
}

// fetchAll loads every record set for a user concurrently.
func (s *Service) fetchAll(userID int64) ([]models.Expense, []models.Income, []models.EMI, []models.PaymentAccount, error) {
	var (
		expenses []models.Expense
		income   []models.Income
		emis     []models.EMI
		accounts []models.PaymentAccount
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ListExpenses(userID, repository.ExpenseFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		income, err = s.repo.ListIncome(userID, repository.IncomeFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		emis, err = s.repo.ListEMIs(userID)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.repo.ListPaymentAccounts(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	return expenses, income, emis, accounts, nil
}

// sortedAmounts flattens a totals map, largest amounts first.
func sortedAmounts(totals map[string]float64) []models.CategoryAmount {
	out := make([]models.CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, models.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}
