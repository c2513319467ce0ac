package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hotel-booking-service/internal/domain"
	"os"
)

// SQL flavor of the connected database. Only placeholders differ.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Initialize the rooms schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoomsQuery := `
	CREATE TABLE IF NOT EXISTS rooms (
		room_number INTEGER PRIMARY KEY,
		floor INTEGER NOT NULL,
		room_index INTEGER NOT NULL,
		state TEXT NOT NULL DEFAULT 'available'
			CHECK (state IN ('available', 'occupied', 'booked'))
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_rooms_floor_index
	ON rooms(floor, room_index);
	`

	statements := []string{
		createRoomsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Insert every room of the hotel topology, leaving existing rows untouched.
func SeedTopology(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("seed topology: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed topology: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
	INSERT INTO rooms (room_number, floor, room_index, state)
	VALUES (%s, %s, %s, 'available')
	ON CONFLICT (room_number) DO NOTHING;
	`, dialect.placeholder(1), dialect.placeholder(2), dialect.placeholder(3))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed topology: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range domain.BuildTopology() {
		for _, r := range f.Rooms {
			if _, err := stmt.Exec(r.Number, r.Floor, r.Index); err != nil {
				return fmt.Errorf("seed topology: insert room %d: %w", r.Number, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed topology: commit tx: %w", err)
	}

	return nil
}

type RoomStateSeed struct {
	RoomNumber int    `json:"room_number"`
	State      string `json:"state"`
}

// Apply initial room states from a JSON file. Rooms must already exist.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed rooms: read %q: %w", jsonPath, err)
	}

	var data []RoomStateSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed rooms: parse json: %w", err)
	}

	for i, item := range data {
		if !domain.IsValidRoom(item.RoomNumber) {
			return fmt.Errorf("seed rooms: invalid room_number at index %d: %d", i+1, item.RoomNumber)
		}
		if _, err := domain.ParseRoomState(item.State); err != nil {
			return fmt.Errorf("seed rooms: item at index %d: %w", i+1, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed rooms: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
	UPDATE rooms
	SET state = %s
	WHERE room_number = %s;
	`, dialect.placeholder(1), dialect.placeholder(2))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed rooms: prepare update: %w", err)
	}
	defer stmt.Close()

	for _, s := range data {
		if _, err := stmt.Exec(s.State, s.RoomNumber); err != nil {
			return fmt.Errorf("seed rooms: update room_number=%d: %w", s.RoomNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed rooms: commit tx: %w", err)
	}

	return nil
}
