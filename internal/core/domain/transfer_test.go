package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

func TestTransferStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.TransferStatus
		to      domain.TransferStatus
		allowed bool
	}{
		{"draft to submitted", domain.StatusDraft, domain.StatusSubmitted, true},
		{"submitted to qc_approved", domain.StatusSubmitted, domain.StatusQCApproved, true},
		{"submitted to rejected", domain.StatusSubmitted, domain.StatusRejected, true},
		{"qc_approved to posted", domain.StatusQCApproved, domain.StatusPosted, true},
		{"rejected back to draft", domain.StatusRejected, domain.StatusDraft, true},
		{"draft cannot skip to posted", domain.StatusDraft, domain.StatusPosted, false},
		{"draft cannot skip to qc_approved", domain.StatusDraft, domain.StatusQCApproved, false},
		{"submitted cannot go back to draft", domain.StatusSubmitted, domain.StatusDraft, false},
		{"qc_approved cannot be rejected", domain.StatusQCApproved, domain.StatusRejected, false},
		{"posted is terminal", domain.StatusPosted, domain.StatusDraft, false},
		{"posted cannot be rejected", domain.StatusPosted, domain.StatusRejected, false},
		{"rejected cannot be resubmitted directly", domain.StatusRejected, domain.StatusSubmitted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestTransferStatus_IsValid(t *testing.T) {
	for _, s := range []domain.TransferStatus{
		domain.StatusDraft, domain.StatusSubmitted, domain.StatusQCApproved,
		domain.StatusPosted, domain.StatusRejected,
	} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.TransferStatus("approved").IsValid())
	assert.False(t, domain.TransferStatus("").IsValid())
}

func TestTransferDocument_UnvalidatedSerialCount(t *testing.T) {
	doc := domain.TransferDocument{
		Lines: []domain.TransferLine{
			{
				Kind: domain.LineSerial,
				Serials: []domain.SerialEntry{
					{SerialNumber: "SN-1", IsValidated: true},
					{SerialNumber: "SN-2", IsValidated: false},
					{SerialNumber: "SN-3", IsValidated: false},
				},
			},
			{
				Kind:     domain.LineQuantity,
				Quantity: decimal.NewFromInt(5),
			},
			{
				Kind: domain.LineSerial,
				Serials: []domain.SerialEntry{
					{SerialNumber: "SN-4", IsValidated: true},
				},
			},
		},
	}

	assert.Equal(t, 2, doc.UnvalidatedSerialCount())

	empty := domain.TransferDocument{}
	assert.Equal(t, 0, empty.UnvalidatedSerialCount())
}

func TestTransferLine_EffectiveQuantity(t *testing.T) {
	serialLine := domain.TransferLine{
		Kind:     domain.LineSerial,
		Quantity: decimal.Zero,
		Serials: []domain.SerialEntry{
			{SerialNumber: "SN-1"},
			{SerialNumber: "SN-2"},
			{SerialNumber: "SN-3"},
		},
	}
	assert.True(t, decimal.NewFromInt(3).Equal(serialLine.EffectiveQuantity()))

	quantityLine := domain.TransferLine{
		Kind:     domain.LineQuantity,
		Quantity: decimal.NewFromFloat(12.5),
	}
	assert.True(t, decimal.NewFromFloat(12.5).Equal(quantityLine.EffectiveQuantity()))
}

func TestUser_Capabilities(t *testing.T) {
	assert.True(t, domain.User{Role: domain.RoleAdmin}.HasQCCapability())
	assert.True(t, domain.User{Role: domain.RoleManager}.HasQCCapability())
	assert.True(t, domain.User{Role: domain.RoleQC}.HasQCCapability())
	assert.False(t, domain.User{Role: domain.RoleOperator}.HasQCCapability())

	assert.True(t, domain.User{Role: domain.RoleAdmin}.HasElevatedRole())
	assert.True(t, domain.User{Role: domain.RoleManager}.HasElevatedRole())
	assert.False(t, domain.User{Role: domain.RoleQC}.HasElevatedRole())
	assert.False(t, domain.User{Role: domain.RoleOperator}.HasElevatedRole())
}
