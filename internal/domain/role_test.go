package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_CanActAs(t *testing.T) {
	assert.True(t, RoleUser.CanActAs(RoleUser))
	assert.False(t, RoleUser.CanActAs(RoleManager))

	assert.True(t, RoleManager.CanActAs(RoleUser))
	assert.True(t, RoleManager.CanActAs(RoleManager))
	assert.False(t, RoleManager.CanActAs(RoleOwner))

	assert.True(t, RoleOwner.CanActAs(RoleManager))
	assert.False(t, RoleOwner.CanActAs(RoleAdmin))

	assert.True(t, RoleAdmin.CanActAs(RoleOwner))
	assert.True(t, RoleAdmin.CanActAs(RoleAdmin))

	// Неизвестная роль не покрывает ничего
	assert.False(t, Role("stranger").CanActAs(RoleUser))
}

func TestRole_IsElevated(t *testing.T) {
	assert.False(t, RoleUser.IsElevated())
	assert.True(t, RoleManager.IsElevated())
	assert.True(t, RoleOwner.IsElevated())
	assert.True(t, RoleAdmin.IsElevated())
}
