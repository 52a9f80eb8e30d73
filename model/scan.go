package model

import "time"

// ScanEvent is one resolved redirect, recorded for analytics. Rows are
// append-only: nothing in the service updates or deletes them. Country and
// city stay nil until an upstream geo-IP collaborator populates them.
type ScanEvent struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	LinkID     string    `gorm:"type:uuid;index;not null" json:"linkID"`
	ScannedAt  time.Time `gorm:"index" json:"scannedAt"`
	DeviceType *string   `gorm:"size:16" json:"deviceType,omitempty"`
	OS         *string   `gorm:"size:16" json:"os,omitempty"`
	Country    *string   `gorm:"size:2" json:"country,omitempty"`
	City       *string   `gorm:"size:100" json:"city,omitempty"`
	IPHash     string    `gorm:"size:64" json:"ipHash"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
