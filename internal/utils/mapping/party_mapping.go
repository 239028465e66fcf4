package mapping

import (
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
)

// ToModelParty converts a domain party to its DB row shape.
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:      d.PartyID,
		PartyType:    models.PartyType(d.PartyType),
		Name:         d.Name,
		Code:         d.Code,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		PaymentTerms: d.PaymentTerms,
		CreditLimit:  d.CreditLimit,
		VendorNumber: d.VendorNumber,
		EmployeeID:   d.EmployeeID,
		Department:   d.Department,
		HireDate:     d.HireDate,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainParty converts a DB row to the domain party.
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:      m.PartyID,
		PartyType:    domain.PartyType(m.PartyType),
		Name:         m.Name,
		Code:         m.Code,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		PaymentTerms: m.PaymentTerms,
		CreditLimit:  m.CreditLimit,
		VendorNumber: m.VendorNumber,
		EmployeeID:   m.EmployeeID,
		Department:   m.Department,
		HireDate:     m.HireDate,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainPartySlice converts a slice of DB rows.
func ToDomainPartySlice(ms []models.Party) []domain.Party {
	ds := make([]domain.Party, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainParty(m)
	}
	return ds
}
