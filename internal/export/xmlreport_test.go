package export

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportXML(t *testing.T) {
	user := &models.User{Name: "Ravi", Email: "ravi@example.com"}
	report := &service.ReportData{
		Period:        "month",
		StartDate:     "2024-07-01",
		EndDate:       "2024-07-31",
		TotalExpenses: 13700,
		TotalIncome:   50000,
		Net:           36300,
		ByCategory: []models.CategoryAmount{
			{Name: "Room Rent", Amount: 8000},
			{Name: "EMI - Laptop", Amount: 4500},
		},
		ByPaymentMode: []models.CategoryAmount{
			{Name: models.PaymentModeCreditCard, Amount: 4500},
		},
		EMIs: []models.EMISummary{
			{Name: "Laptop", Amount: 4500, DueDay: 5, MonthsLeft: 6},
		},
		MonthlyTrend: []models.MonthlyTrendPoint{
			{Month: "Jul", Expenses: 13700, Income: 50000},
		},
	}

	data, err := ReportXML(user, report)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	root := doc.SelectElement("FinancialReport")
	require.NotNil(t, root)
	assert.Equal(t, "month", root.SelectAttrValue("period", ""))
	assert.Equal(t, "2024-07-01", root.SelectAttrValue("start", ""))

	summary := root.SelectElement("Summary")
	require.NotNil(t, summary)
	assert.Equal(t, "13700.00", summary.SelectElement("TotalExpenses").Text())
	assert.Equal(t, "36300.00", summary.SelectElement("Net").Text())

	categories := root.SelectElement("Categories").SelectElements("Category")
	require.Len(t, categories, 2)
	assert.Equal(t, "Room Rent", categories[0].SelectAttrValue("name", ""))
	assert.Equal(t, "8000.00", categories[0].Text())

	emi := root.SelectElement("ActiveEMIs").SelectElement("EMI")
	require.NotNil(t, emi)
	assert.Equal(t, "Laptop", emi.SelectAttrValue("name", ""))
	assert.Equal(t, "6", emi.SelectElement("MonthsLeft").Text())
}
