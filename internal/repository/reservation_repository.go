package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	models "github.com/rgaultier/taxiresa/internal"
)

type DBConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type ReservationRepository struct {
	db DBConn
}

func NewReservationRepository(db DBConn) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateReservation inserts the record with a store-assigned id and creation
// time. Status is forced to "new" regardless of what the caller set.
func (r *ReservationRepository) CreateReservation(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	res.Status = models.StatusNew
	res.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO reservations (id, name, phone, departure, arrival, stops, date, passengers, luggages, status, created_at)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)
    `
	_, err := r.db.Exec(ctx, query,
		res.ID, res.Name, res.Phone, res.Departure, res.Arrival, res.Stops,
		res.Date, res.Passengers, res.Luggages, res.Status, res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListReservations returns every record, newest first. The dashboard holds
// the full list in memory; there is no server-side pagination.
func (r *ReservationRepository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	query := `
        SELECT id, name, phone, departure, arrival, COALESCE(stops, ''), date, passengers, luggages, status, created_at
        FROM reservations
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		err := rows.Scan(
			&res.ID, &res.Name, &res.Phone, &res.Departure, &res.Arrival, &res.Stops,
			&res.Date, &res.Passengers, &res.Luggages, &res.Status, &res.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus mutates the one mutable field. Concurrent updates are
// last-write-wins; there is no optimistic concurrency check.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error {
	if !status.IsValid() {
		return models.ErrInvalidStatus
	}
	query := `UPDATE reservations SET status = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrReservationNotFound
	}
	return nil
}
