package groups

import "github.com/cleared-dev/ledgerview/internal/model"

// Built-in group IDs.
const (
	BranchDivision     int64 = -1
	CapitalAccount     int64 = -2
	CurrentAssets      int64 = -3
	CurrentLiabilities int64 = -4
	DirectExpenses     int64 = -5
	DirectIncome       int64 = -6
	FixedAssets        int64 = -7
	IndirectExpenses   int64 = -8
	IndirectIncome     int64 = -9
	Investments        int64 = -10
	LoanLiability      int64 = -11
	MiscExpensesAssets int64 = -12
	PurchaseAccounts   int64 = -13
	SalesAccounts      int64 = -14
	SuspenseAccount    int64 = -15
	ProfitLoss         int64 = -16
	TDSPayables        int64 = -17
)

// Type tags carried by built-in groups. Custom groups may reuse them.
const (
	TypeDirectExpenses   = "direct-expenses"
	TypeIndirectExpenses = "indirect-expenses"
	TypeIndirectIncome   = "indirect-income"
	TypePurchaseAccounts = "purchase-accounts"
	TypeSalesAccounts    = "sales-accounts"
	TypeStockInHand      = "stock-in-hand"
)

// DefaultGroups returns the fixed built-in group chart.
func DefaultGroups() []model.LedgerGroup {
	return []model.LedgerGroup{
		{ID: BranchDivision, Name: "Branch/Division", Nature: model.NatureLiabilities, Type: "branch-division"},
		{ID: CapitalAccount, Name: "Capital Account", Nature: model.NatureLiabilities, Type: "capital-account"},
		{ID: CurrentAssets, Name: "Current Assets", Nature: model.NatureAssets, Type: "current-assets"},
		{ID: CurrentLiabilities, Name: "Current Liabilities", Nature: model.NatureLiabilities, Type: "current-liabilities"},
		{ID: DirectExpenses, Name: "Direct Expenses", Nature: model.NatureExpenses, Type: TypeDirectExpenses},
		{ID: DirectIncome, Name: "Direct Income", Nature: model.NatureIncome, Type: "direct-income"},
		{ID: FixedAssets, Name: "Fixed Assets", Nature: model.NatureAssets, Type: "fixed-assets"},
		{ID: IndirectExpenses, Name: "Indirect Expenses", Nature: model.NatureExpenses, Type: TypeIndirectExpenses},
		{ID: IndirectIncome, Name: "Indirect Income", Nature: model.NatureIncome, Type: TypeIndirectIncome},
		{ID: Investments, Name: "Investments", Nature: model.NatureAssets, Type: "investments"},
		{ID: LoanLiability, Name: "Loan(Liability)", Nature: model.NatureLiabilities, Type: "loan-liability"},
		{ID: MiscExpensesAssets, Name: "Misc Expenses(Assets)", Nature: model.NatureAssets, Type: "misc-expenses-assets"},
		{ID: PurchaseAccounts, Name: "Purchase Accounts", Nature: model.NatureExpenses, Type: TypePurchaseAccounts},
		{ID: SalesAccounts, Name: "Sales Accounts", Nature: model.NatureIncome, Type: TypeSalesAccounts},
		{ID: SuspenseAccount, Name: "Suspense A/C", Nature: model.NatureLiabilities, Type: "suspense"},
		{ID: ProfitLoss, Name: "Profit/Loss", Nature: model.NatureLiabilities, Type: "profit-loss"},
		{ID: TDSPayables, Name: "TDS Payables", Nature: model.NatureLiabilities, Type: "tds-payables"},
	}
}
