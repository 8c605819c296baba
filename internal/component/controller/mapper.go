package controller

import (
	"stockroom/internal/domain"
	"stockroom/internal/dto"
)

const dateLayout = "2006-01-02"

func toComponentDTO(c domain.Component, checkedOut int) dto.ComponentDTO {
	out := dto.ComponentDTO{
		ID:           c.ID,
		Name:         c.Name,
		CategoryID:   c.CategoryID,
		LocationID:   c.LocationID,
		CompanyID:    c.CompanyID,
		OrderNumber:  c.OrderNumber,
		MinAmt:       c.MinAmt,
		Serial:       c.Serial,
		PurchaseCost: c.PurchaseCost,
		Qty:          c.Qty,
		CheckedOut:   checkedOut,
		Remaining:    c.RemainingStock(checkedOut),
		UserID:       c.UserID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.PurchaseDate != nil {
		d := c.PurchaseDate.Format(dateLayout)
		out.PurchaseDate = &d
	}
	return out
}

func toCheckoutDTO(a domain.CheckoutAssignment) dto.CheckoutDTO {
	return dto.CheckoutDTO{
		ID:          a.ID,
		ComponentID: a.ComponentID,
		AssetID:     a.AssetID,
		UserID:      a.UserID,
		AssignedQty: a.AssignedQty,
		CreatedAt:   a.CreatedAt,
	}
}

func toAssetDTO(a domain.Asset) dto.AssetDTO {
	return dto.AssetDTO{
		ID:        a.ID,
		Name:      a.Name,
		AssetTag:  a.AssetTag,
		CompanyID: a.CompanyID,
	}
}

func toAuditEntryDTO(e domain.AuditEntry) dto.AuditEntryDTO {
	return dto.AuditEntryDTO{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
}
