package role

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yosvanyperez/fondos/internal/fixtures/memrepo"
	"github.com/yosvanyperez/fondos/pkg/domain"
)

func TestList_ReturnsFixedRoleSet(t *testing.T) {
	svc := New(memrepo.NewStore())

	roles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)

	labels := map[domain.Role]string{}
	for _, r := range roles {
		labels[r.Code] = r.Label
	}
	assert.Equal(t, "Asesor", labels[domain.RoleAssessor])
	assert.Equal(t, "Supervisor", labels[domain.RoleSupervisor])
	assert.Equal(t, "Administrador", labels[domain.RoleAdministrator])
}

func TestGet(t *testing.T) {
	store := memrepo.NewStore()
	svc := New(store)

	read, err := svc.Get(
		context.Background(), store.RoleID(domain.RoleSupervisor))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupervisor, read.Code)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}
