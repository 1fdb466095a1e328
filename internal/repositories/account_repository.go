package repositories

import (
	"context"
	"fmt"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"gorm.io/gorm"
)

// RelationalDeletion counts the rows removed by DeleteRelationalData
type RelationalDeletion struct {
	Follows  int64 `json:"follows"`
	Comments int64 `json:"comments"`
	Profiles int64 `json:"profiles"`
}

// AccountRepository removes everything a user owns in the relational store
type AccountRepository interface {
	DeleteRelationalData(ctx context.Context, userID string) (*RelationalDeletion, error)
}

// PostgresAccountRepository implements AccountRepository in a single transaction
type PostgresAccountRepository struct {
	db *gorm.DB
}

func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// DeleteRelationalData deletes follow edges in both directions, comments and the profile.
// Either all of them are removed or none is.
func (r *PostgresAccountRepository) DeleteRelationalData(ctx context.Context, userID string) (*RelationalDeletion, error) {
	deletion := &RelationalDeletion{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? OR following_id = ?", userID, userID).Delete(&models.Follow{})
		if res.Error != nil {
			return fmt.Errorf("delete follows: %w", res.Error)
		}
		deletion.Follows = res.RowsAffected

		res = tx.Where("user_id = ?", userID).Delete(&models.Comment{})
		if res.Error != nil {
			return fmt.Errorf("delete comments: %w", res.Error)
		}
		deletion.Comments = res.RowsAffected

		res = tx.Where("id = ?", userID).Delete(&models.Profile{})
		if res.Error != nil {
			return fmt.Errorf("delete profile: %w", res.Error)
		}
		deletion.Profiles = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deletion, nil
}
