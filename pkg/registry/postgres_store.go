package registry

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotModel is the single keyed row a PostgresStore reads and writes.
// The whole collection document lives in one JSON column so the store keeps
// the same atomic slot semantics as the Redis backend.
type SnapshotModel struct {
	Slot      string         `gorm:"primaryKey;column:slot"`
	Document  datatypes.JSON `gorm:"column:document"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (SnapshotModel) TableName() string {
	return "collection_snapshots"
}

type PostgresStore struct {
	db   *gorm.DB
	slot string
}

func NewPostgresStore(db *gorm.DB, slot string) *PostgresStore {
	return &PostgresStore{db: db, slot: slot}
}

func (s *PostgresStore) AutoMigrate() error {
	return s.db.AutoMigrate(&SnapshotModel{})
}

func (s *PostgresStore) Read(ctx context.Context) ([]byte, bool, error) {
	var row SnapshotModel
	err := s.db.WithContext(ctx).First(&row, "slot = ?", s.slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(row.Document), true, nil
}

func (s *PostgresStore) Write(ctx context.Context, document []byte) error {
	row := SnapshotModel{
		Slot:      s.slot,
		Document:  datatypes.JSON(document),
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&row).Error
}
