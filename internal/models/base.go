package models

import (
	"github.com/google/uuid"
)

// assignID gives a record a UUIDv4 identifier unless the caller already set one.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// AllModels lists every persisted model in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&ProjectMember{},
		&Task{},
		&Subtask{},
		&Folder{},
		&Asset{},
		&AssetVersion{},
		&Comment{},
		&Invoice{},
		&InvoiceItem{},
		&InvoiceSequence{},
		&TeamActivity{},
		&Badge{},
		&UserBadge{},
		&Notification{},
	}
}
