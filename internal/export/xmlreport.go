// Package export renders reports into downloadable documents.
package export

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/service"
)

// ReportXML renders a financial report as an XML document.
func ReportXML(user *models.User, report *service.ReportData) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("FinancialReport")
	root.CreateAttr("period", report.Period)
	root.CreateAttr("start", report.StartDate)
	root.CreateAttr("end", report.EndDate)

	owner := root.CreateElement("Owner")
	owner.CreateElement("Name").SetText(user.Name)
	owner.CreateElement("Email").SetText(user.Email)

	summary := root.CreateElement("Summary")
	summary.CreateElement("TotalExpenses").SetText(amount(report.TotalExpenses))
	summary.CreateElement("TotalIncome").SetText(amount(report.TotalIncome))
	summary.CreateElement("Net").SetText(amount(report.Net))

	categories := root.CreateElement("Categories")
	for _, c := range report.ByCategory {
		el := categories.CreateElement("Category")
		el.CreateAttr("name", c.Name)
		el.SetText(amount(c.Amount))
	}

	modes := root.CreateElement("PaymentModes")
	for _, m := range report.ByPaymentMode {
		el := modes.CreateElement("Mode")
		el.CreateAttr("name", m.Name)
		el.SetText(amount(m.Amount))
	}

	emis := root.CreateElement("ActiveEMIs")
	for _, e := range report.EMIs {
		el := emis.CreateElement("EMI")
		el.CreateAttr("name", e.Name)
		el.CreateElement("Amount").SetText(amount(e.Amount))
		el.CreateElement("DueDay").SetText(fmt.Sprintf("%d", e.DueDay))
		el.CreateElement("MonthsLeft").SetText(fmt.Sprintf("%d", e.MonthsLeft))
	}

	trend := root.CreateElement("MonthlyTrend")
	for _, p := range report.MonthlyTrend {
		el := trend.CreateElement("Month")
		el.CreateAttr("name", p.Month)
		el.CreateElement("Expenses").SetText(amount(p.Expenses))
		el.CreateElement("Income").SetText(amount(p.Income))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
