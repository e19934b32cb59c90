package domain

import (
	"bytes"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entitlement which video groups a tier may play.
// The zero value is RestrictedTo() and grants nothing.
type Entitlement struct {
	unrestricted bool
	groups       map[uuid.UUID]struct{}
}

// Unrestricted grants every video
func Unrestricted() Entitlement {
	return Entitlement{unrestricted: true}
}

// RestrictedTo grants videos of the listed groups only
func RestrictedTo(groupIDs ...uuid.UUID) Entitlement {
	e := Entitlement{groups: make(map[uuid.UUID]struct{}, len(groupIDs))}
	for _, id := range groupIDs {
		e.groups[id] = struct{}{}
	}
	return e
}

// IsUnrestricted report whether every video is granted
func (e Entitlement) IsUnrestricted() bool {
	return e.unrestricted
}

// Contains report whether groupID is explicitly granted
func (e Entitlement) Contains(groupID uuid.UUID) bool {
	_, ok := e.groups[groupID]
	return ok
}

// GroupIDs granted groups in a stable order, nil when unrestricted
func (e Entitlement) GroupIDs() []uuid.UUID {
	if e.unrestricted {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(e.groups))
	for id := range e.groups {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

// With returns e plus groupID and whether anything changed
func (e Entitlement) With(groupID uuid.UUID) (Entitlement, bool) {
	if e.unrestricted || e.Contains(groupID) {
		return e, false
	}
	return RestrictedTo(append(e.GroupIDs(), groupID)...), true
}

// Without returns e minus groupID and whether anything changed
func (e Entitlement) Without(groupID uuid.UUID) (Entitlement, bool) {
	if e.unrestricted || !e.Contains(groupID) {
		return e, false
	}
	ids := e.GroupIDs()
	ids = slices.DeleteFunc(ids, func(id uuid.UUID) bool { return id == groupID })
	return RestrictedTo(ids...), true
}

// AccountType a named tier
type AccountType struct {
	Name        string
	Entitlement Entitlement
}

// NormalizeName tier and group names are case folded
func NormalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// UserAccountType tier assigned to one user
type UserAccountType struct {
	UserID      string    `gorm:"primaryKey" json:"userId"`
	AccountType string    `gorm:"not null;index" json:"accountType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VideoAssetGroup named set of assets, empty is valid and grants nothing
type VideoAssetGroup struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	VideoAssetIDs []uuid.UUID `json:"videoAssetIds"`
}

// HasAsset report whether assetID is a member
func (g VideoAssetGroup) HasAsset(assetID uuid.UUID) bool {
	return slices.Contains(g.VideoAssetIDs, assetID)
}

// AccountTypeView admin representation of a tier
type AccountTypeView struct {
	Name          string      `json:"name"`
	Unrestricted  bool        `json:"unrestricted"`
	VideoGroupIDs []uuid.UUID `json:"videoGroupIds"`
}

// View admin representation
func (a AccountType) View() AccountTypeView {
	v := AccountTypeView{Name: a.Name, Unrestricted: a.Entitlement.IsUnrestricted()}
	if !v.Unrestricted {
		v.VideoGroupIDs = a.Entitlement.GroupIDs()
	}
	return v
}
