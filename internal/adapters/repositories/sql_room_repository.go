package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/platform/obs"
)

// SQLRoomRepository is the Postgres-backed RoomStateRepository. Bookings are
// conditional on the row still being available, so processes sharing the
// table cannot double-book a room. Undo history stays per process.
type SQLRoomRepository struct {
	DB *sql.DB
}

func NewSQLRoomRepository(db *sql.DB) *SQLRoomRepository {
	return &SQLRoomRepository{DB: db}
}

func (s *SQLRoomRepository) Snapshot(ctx context.Context) (_ domain.Snapshot, err error) {
	defer obs.Time(ctx, "rooms.sql.Snapshot")(&err)

	if s.DB == nil {
		return nil, errors.New("sql room repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT room_number, state
	FROM rooms
	ORDER BY room_number;
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot rooms: query rooms table: %w", err)
	}
	defer rows.Close()

	return scanSnapshot(rows)
}

func (s *SQLRoomRepository) SetStates(ctx context.Context, changes map[int]domain.RoomState) (err error) {
	defer obs.Time(ctx, "rooms.sql.SetStates")(&err)

	if s.DB == nil {
		return errors.New("sql room repository: db is nil")
	}
	return setStates(ctx, s.DB, Postgres, changes)
}

func (s *SQLRoomRepository) Reset(ctx context.Context) (err error) {
	defer obs.Time(ctx, "rooms.sql.Reset")(&err)

	if s.DB == nil {
		return errors.New("sql room repository: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `UPDATE rooms SET state = 'available';`); err != nil {
		return fmt.Errorf("reset rooms: %w", err)
	}
	return nil
}
