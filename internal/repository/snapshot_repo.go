package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

// SnapshotRepository persists one whole snapshot row per user. Snapshots are
// written as a single JSONB document; there is no per-entity persistence.
type SnapshotRepository interface {
	// Load returns the user's snapshot. A user without a stored row gets an
	// empty snapshot, not an error.
	Load(ctx context.Context, userID string) (*model.Snapshot, error)
	// Save replaces the user's stored snapshot.
	Save(ctx context.Context, userID string, s *model.Snapshot) error
}

// snapshotRow is the storage shape of the snapshots table.
type snapshotRow struct {
	UserID    string    `gorm:"primaryKey;column:user_id"`
	Data      []byte    `gorm:"column:data;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string { return "snapshots" }

type snapshotRepo struct {
	db *gorm.DB
}

// NewSnapshotRepo creates the GORM implementation of SnapshotRepository.
func NewSnapshotRepo(db *gorm.DB) SnapshotRepository {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) Load(ctx context.Context, userID string) (*model.Snapshot, error) {
	var row snapshotRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var s model.Snapshot
	if err := json.Unmarshal(row.Data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

func (r *snapshotRepo) Save(ctx context.Context, userID string, s *model.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	row := snapshotRow{UserID: userID, Data: data, UpdatedAt: time.Now()}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
