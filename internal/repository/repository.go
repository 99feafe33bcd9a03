package repository

import "gorm.io/gorm"

// Repository is the aggregate entry point for all data access.
type Repository struct {
	User     UserRepository
	Snapshot SnapshotRepository
}

// NewRepository wires the GORM-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Snapshot: NewSnapshotRepo(db),
	}
}
