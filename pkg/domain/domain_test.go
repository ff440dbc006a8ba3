package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Labels(t *testing.T) {
	assert.Equal(t, "Asesor", RoleAssessor.Label())
	assert.Equal(t, "Supervisor", RoleSupervisor.Label())
	assert.Equal(t, "Administrador", RoleAdministrator.Label())
}

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		parsed, err := ParseRole(string(role))
		assert.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	// Display labels are presentation-only and never parse back.
	_, err := ParseRole("Asesor")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestActivity_Labels(t *testing.T) {
	assert.Equal(t, "Depósito", ActivityDeposit.Label())
	assert.Equal(t, "Egreso", ActivityWithdrawal.Label())
	assert.Equal(t, "Transferencia", ActivityTransfer.Label())
	assert.Equal(t, "Creación de un Fondo", ActivityCreateFund.Label())
	assert.Equal(t, "Eliminación de un Fondo", ActivityDeleteFund.Label())
}

func TestActivity_RequiresAmount(t *testing.T) {
	assert.True(t, ActivityDeposit.RequiresAmount())
	assert.True(t, ActivityWithdrawal.RequiresAmount())
	assert.True(t, ActivityTransfer.RequiresAmount())
	assert.False(t, ActivityCreateFund.RequiresAmount())
	assert.False(t, ActivityDeleteFund.RequiresAmount())
}

func TestTransactionType_Labels(t *testing.T) {
	assert.Equal(t, "Depósito", TransactionDeposit.Label())
	assert.Equal(t, "Egreso", TransactionWithdrawal.Label())
}
