package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Logger is the database Sink: one audit_logs row per event.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	meta, err := encodeMetadata(ev.Metadata)
	if err != nil {
		return fmt.Errorf("audit %s: encode metadata: %w", ev.Action, err)
	}

	return l.db.WithContext(ctx).Create(&models.AuditLog{
		ProviderID: ev.ProviderID,
		ActorID:    ev.ActorID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   meta,
	}).Error
}

func encodeMetadata(meta any) (string, error) {
	if meta == nil {
		return "", nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
