package domain

import "time"

// Admin actions recorded in the audit trail
const (
	ActionAssetUpsert            = "VIDEO_ASSET_UPSERT"
	ActionAssetDelete            = "VIDEO_ASSET_DELETE"
	ActionGroupCreate            = "VIDEO_GROUP_CREATE"
	ActionGroupDelete            = "VIDEO_GROUP_DELETE"
	ActionGroupAddAsset          = "VIDEO_GROUP_ADD_ASSET"
	ActionGroupRemoveAsset       = "VIDEO_GROUP_REMOVE_ASSET"
	ActionAccountTypeCreate      = "ACCOUNT_TYPE_CREATE"
	ActionAccountTypeAddGroup    = "ACCOUNT_TYPE_ADD_GROUP"
	ActionAccountTypeRemoveGroup = "ACCOUNT_TYPE_REMOVE_GROUP"
	ActionUserAccountTypeSet     = "USER_ACCOUNT_TYPE_SET"
	ActionLicenseUpsert          = "VIDEO_LICENSE_UPSERT"
	ActionLicenseDelete          = "VIDEO_LICENSE_DELETE"
)

// AdminAuditLog one admin mutation
type AdminAuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminUID  string    `gorm:"not null;index" json:"adminUid"`
	Action    string    `gorm:"not null" json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
