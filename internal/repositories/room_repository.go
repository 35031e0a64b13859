package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
)

// RoomRepository defines the database operations for hotel rooms.
type RoomRepository interface {
	CreateRoom(executor SQLExecutor, room *models.Room) error
	GetRoomByID(executor SQLExecutor, roomID int64, forUpdate bool) (*models.Room, error)
	GetRooms(executor SQLExecutor) ([]models.Room, error) // each room carries its active booking, if any
	UpdateRoom(executor SQLExecutor, room *models.Room) error
	UpdateRoomStatus(executor SQLExecutor, roomID int64, status models.RoomStatus) error
}

type roomRepository struct {
	bookings BookingRepository
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(bookings BookingRepository) RoomRepository {
	return &roomRepository{bookings: bookings}
}

const roomColumns = `id, room_number, type, floor, capacity, price_non_ac, price_ac, status, created_at, updated_at`

func scanRoom(row scanner) (*models.Room, error) {
	var room models.Room
	err := row.Scan(&room.ID, &room.RoomNumber, &room.Type, &room.Floor, &room.Capacity,
		&room.PriceNonAC, &room.PriceAC, &room.Status, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) CreateRoom(executor SQLExecutor, room *models.Room) error {
	query := `INSERT INTO rooms (room_number, type, floor, capacity, price_non_ac, price_ac, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	err := executor.QueryRow(query,
		room.RoomNumber, room.Type, room.Floor, room.Capacity, room.PriceNonAC, room.PriceAC, room.Status,
		room.CreatedAt, room.UpdatedAt,
	).Scan(&room.ID)
	if err != nil {
		return mapWriteError(err, "creating room "+room.RoomNumber)
	}
	return nil
}

func (r *roomRepository) GetRoomByID(executor SQLExecutor, roomID int64, forUpdate bool) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1` + lockClause(forUpdate)
	room, err := scanRoom(executor.QueryRow(query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting room by ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return room, nil
}

func (r *roomRepository) GetRooms(executor SQLExecutor) ([]models.Room, error) {
	rows, err := executor.Query(`SELECT ` + roomColumns + ` FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying rooms: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning room: %v", ErrDatabaseError, err)
		}
		rooms = append(rooms, *room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating room rows: %v", ErrDatabaseError, err)
	}

	active, err := r.bookings.GetActiveBookings(executor)
	if err != nil {
		return nil, err
	}
	byRoom := make(map[int64]*models.RoomBooking, len(active))
	for i := range active {
		byRoom[active[i].RoomID] = &active[i]
	}
	for i := range rooms {
		rooms[i].CurrentBooking = byRoom[rooms[i].ID]
	}
	return rooms, nil
}

func (r *roomRepository) UpdateRoom(executor SQLExecutor, room *models.Room) error {
	query := `UPDATE rooms SET room_number = $1, type = $2, floor = $3, capacity = $4,
	                 price_non_ac = $5, price_ac = $6, status = $7, updated_at = $8
	          WHERE id = $9`

	room.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		room.RoomNumber, room.Type, room.Floor, room.Capacity, room.PriceNonAC, room.PriceAC, room.Status,
		room.UpdatedAt, room.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating room ID %d", room.ID))
	}
	return checkAffected(result)
}

func (r *roomRepository) UpdateRoomStatus(executor SQLExecutor, roomID int64, status models.RoomStatus) error {
	result, err := executor.Exec(`UPDATE rooms SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), roomID)
	if err != nil {
		return fmt.Errorf("%w: updating status of room ID %d: %v", ErrDatabaseError, roomID, err)
	}
	return checkAffected(result)
}
