package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/storage"
)

// CreateHousehold persists a new household.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO households (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		household.ID, household.Name, household.CreatedBy, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}
	return nil
}

// GetHousehold retrieves a household by ID.
func (s *SQLiteStore) GetHousehold(ctx context.Context, id string) (*models.Household, error) {
	household := &models.Household{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM households WHERE id = ?",
		id,
	).Scan(&household.ID, &household.Name, &household.CreatedBy, &household.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return household, nil
}

// AddMember adds a member to a household. UserID may be empty for an
// unclaimed placeholder member.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	var userID any
	if member.UserID != "" {
		userID = member.UserID
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, household_id, display_name, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.HouseholdID, member.DisplayName, userID, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// ListMembers retrieves all members of a household ordered by display name.
func (s *SQLiteStore) ListMembers(ctx context.Context, householdID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, household_id, display_name, user_id, created_at FROM members WHERE household_id = ? ORDER BY display_name",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		var userID sql.NullString
		if err := rows.Scan(&member.ID, &member.HouseholdID, &member.DisplayName, &userID, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if userID.Valid {
			member.UserID = userID.String
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
