package domain

import "time"

const (
	AuditActionCheckout = "checkout"

	AuditItemComponent = "component"
	AuditTargetAsset   = "asset"
)

type AuditEntry struct {
	ID         int64
	ActorID    int64
	Action     string
	ItemType   string
	ItemID     int64
	TargetType string
	TargetID   int64
	Note       *string
	CreatedAt  time.Time
}
