package audit

import (
	"encoding/json"
	"fmt"

	"caja-maestra-backend/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog agrega una entrada al historial de auditoría. El historial es
// solo-escritura: las operaciones del libro son inmutables, así que acá no
// hay update ni undo.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	// jsonb no acepta string vacío, el default es el JSON "null"
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de auditoría: %w", err)
	}

	return nil
}
