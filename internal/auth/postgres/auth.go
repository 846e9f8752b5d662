package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mputra/treasury-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForNPM(npm string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE npm = ? AND is_active = true AND deleted_at IS NULL`

	row := r.db.Raw(query, npm).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("member not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetActorByID(userID int64) (*auth.Actor, error) {
	var actor auth.Actor
	var rawRole string

	query := `SELECT id, npm, name, role, position, is_active FROM users WHERE id = ? AND deleted_at IS NULL`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&actor.ID, &actor.NPM, &actor.Name, &rawRole, &actor.Position, &actor.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("member not found")
		}
		return nil, err
	}

	actor.Role = auth.NormalizeRole(rawRole)
	return &actor, nil
}
