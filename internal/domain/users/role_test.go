//go:build unit
// +build unit

package users

import (
	"errors"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role     Role
		perm     Permission
		expected bool
	}{
		{RoleAdmin, PermAuditExport, true},
		{RoleOperator, PermLeadsManage, true},
		{RoleOperator, PermAuditView, false},
		{RoleCaregiver, PermShiftsApply, true},
		{RoleCaregiver, PermShiftsCreate, false},
		{RoleFamily, PermDocumentsUpload, true},
		{RoleAffiliate, PermResidentsView, false},
		{Role("UNKNOWN"), PermDashboardView, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.expected, HasPermission(tt.role, tt.perm))
		})
	}
}

func TestPrincipal(t *testing.T) {
	p := Principal{ID: "u1", Role: RoleStaff}
	assert.True(t, p.Is(RoleOperator, RoleStaff))
	assert.False(t, p.Is(RoleAdmin))
	assert.True(t, p.Can(PermShiftsCreate))
	assert.True(t, RoleProvider.Valid())
	assert.False(t, Role("ROOT").Valid())
}

func TestRegisterInput_Validate(t *testing.T) {
	valid := RegisterInput{Email: "jane@example.com", Password: "s3cretpass", FirstName: "Jane", LastName: "Doe", Role: RoleFamily}

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantErr bool
	}{
		{"valid", func(in *RegisterInput) {}, false},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, true},
		{"bad email", func(in *RegisterInput) { in.Email = "jane" }, true},
		{"blank name", func(in *RegisterInput) { in.FirstName = "  " }, true},
		{"admin role not self-service", func(in *RegisterInput) { in.Role = RoleAdmin }, true},
		{"operator role not self-service", func(in *RegisterInput) { in.Role = RoleOperator }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
