package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/platform/obs"
	"slices"
)

// SQLite-backed implementation of the RoomStateRepository port.
type SqliteRoomRepository struct{ DB *sql.DB }

func NewSqliteRoomRepository(db *sql.DB) *SqliteRoomRepository {
	return &SqliteRoomRepository{DB: db}
}

// Return the state of every stored room.
func (s *SqliteRoomRepository) Snapshot(ctx context.Context) (_ domain.Snapshot, err error) {
	defer obs.Time(ctx, "rooms.sqlite.Snapshot")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite room repository: DB is nil")
	}

	query := `
	SELECT
		room_number,
		state
	FROM rooms
	ORDER BY room_number;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot rooms: query rooms table: %w", err)
	}
	defer rows.Close()

	return scanSnapshot(rows)
}

func (s *SqliteRoomRepository) SetStates(ctx context.Context, changes map[int]domain.RoomState) (err error) {
	defer obs.Time(ctx, "rooms.sqlite.SetStates")(&err)

	if s.DB == nil {
		return errors.New("sqlite room repository: DB is nil")
	}
	return setStates(ctx, s.DB, SQLite, changes)
}

func (s *SqliteRoomRepository) Reset(ctx context.Context) (err error) {
	defer obs.Time(ctx, "rooms.sqlite.Reset")(&err)

	if s.DB == nil {
		return errors.New("sqlite room repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `UPDATE rooms SET state = 'available';`); err != nil {
		return fmt.Errorf("reset rooms: %w", err)
	}
	return nil
}

func scanSnapshot(rows *sql.Rows) (domain.Snapshot, error) {
	snap := make(domain.Snapshot, 128)
	for rows.Next() {
		var number int
		var state string
		if err := rows.Scan(&number, &state); err != nil {
			return nil, fmt.Errorf("snapshot rooms: scan row: %w", err)
		}

		st, err := domain.ParseRoomState(state)
		if err != nil {
			return nil, fmt.Errorf("snapshot rooms: room %d: %w", number, err)
		}
		snap[number] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rooms: row iteration: %w", err)
	}

	return snap, nil
}

// setStates applies all changes in one transaction and fails if any room is
// unknown, leaving the table untouched. Rooms are only booked while their row
// is still available, so concurrent writers cannot book the same room twice.
func setStates(ctx context.Context, db *sql.DB, dialect Dialect, changes map[int]domain.RoomState) error {
	if len(changes) == 0 {
		return nil
	}

	numbers := make([]int, 0, len(changes))
	for n, st := range changes {
		if _, err := domain.ParseRoomState(string(st)); err != nil {
			return fmt.Errorf("set room states: room %d: %w", n, err)
		}
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set room states: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	update, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	UPDATE rooms
	SET state = %s
	WHERE room_number = %s;
	`, dialect.placeholder(1), dialect.placeholder(2)))
	if err != nil {
		return fmt.Errorf("set room states: prepare update: %w", err)
	}
	defer update.Close()

	book, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	UPDATE rooms
	SET state = 'booked'
	WHERE room_number = %s
		AND state = 'available';
	`, dialect.placeholder(1)))
	if err != nil {
		return fmt.Errorf("set room states: prepare book: %w", err)
	}
	defer book.Close()

	for _, n := range numbers {
		var res sql.Result
		if changes[n] == domain.RoomBooked {
			res, err = book.ExecContext(ctx, n)
		} else {
			res, err = update.ExecContext(ctx, string(changes[n]), n)
		}
		if err != nil {
			return fmt.Errorf("set room states: update room %d: %w", n, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("set room states: rows affected for room %d: %w", n, err)
		}
		if affected == 1 {
			continue
		}

		exists, err := roomExists(ctx, tx, dialect, n)
		if err != nil {
			return fmt.Errorf("set room states: %w", err)
		}
		if !exists {
			return fmt.Errorf("set room states: unknown room %d", n)
		}
		return fmt.Errorf("set room states: book room %d: %w", n, domain.ErrRoomUnavailable)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set room states: commit tx: %w", err)
	}

	return nil
}

func roomExists(ctx context.Context, tx *sql.Tx, dialect Dialect, n int) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, fmt.Sprintf(`
	SELECT 1
	FROM rooms
	WHERE room_number = %s;
	`, dialect.placeholder(1)), n).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up room %d: %w", n, err)
	}
	return true, nil
}
