package domain

// FundActivity identifies a fund-affecting operation recorded in the
// activity log.
type FundActivity string

const (
	ActivityDeposit    FundActivity = "deposit"
	ActivityWithdrawal FundActivity = "withdrawal"
	ActivityTransfer   FundActivity = "transfer"
	ActivityCreateFund FundActivity = "create_fund"
	ActivityDeleteFund FundActivity = "delete_fund"
)

// Label returns the display value persisted in activity rows.
func (a FundActivity) Label() string {
	switch a {
	case ActivityDeposit:
		return "Depósito"
	case ActivityWithdrawal:
		return "Egreso"
	case ActivityTransfer:
		return "Transferencia"
	case ActivityCreateFund:
		return "Creación de un Fondo"
	case ActivityDeleteFund:
		return "Eliminación de un Fondo"
	}
	return string(a)
}

// RequiresAmount reports whether an activity must carry an amount. Fund
// creation and deletion move no money; everything else does.
func (a FundActivity) RequiresAmount() bool {
	return a != ActivityCreateFund && a != ActivityDeleteFund
}

// TransactionType tags the direction of a money movement. A transfer produces
// two rows: a withdrawal leg on the source and a deposit leg on the
// destination.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Label returns the display value persisted in activity rows.
func (t TransactionType) Label() string {
	switch t {
	case TransactionDeposit:
		return "Depósito"
	case TransactionWithdrawal:
		return "Egreso"
	}
	return string(t)
}
