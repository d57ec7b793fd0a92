package table

// Well-known survey columns. The dashboard degrades gracefully when a
// workbook omits any of them; these names are only lookups, never
// requirements.
const (
	ColCompany          = "Company"
	ColEmploymentStatus = "Employment Status"
	ColAreasCovered     = "Areas Covered"
	ColAge              = "Age (Years)"
	ColDeliveries       = "Deliveries per day"
	ColMedicalInsurance = "Medical Insurance"
	ColNetIncome        = "Net Income (Gross - All Expenses) (EGP)"

	ColFuelExpenses     = "Fuel Expenses (EGP)"
	ColMaintenanceCosts = "Maintenance Costs (EGP)"
	ColFinancingLease   = "Financing/Lease (EGP)"
	ColOtherExpenses    = "Other Expenses (licenses, permits, fines, etc....)"
)

// ExpenseColumns are the four wide expense columns the stacked expense
// chart reshapes into long form.
var ExpenseColumns = []string{
	ColFuelExpenses,
	ColMaintenanceCosts,
	ColFinancingLease,
	ColOtherExpenses,
}
