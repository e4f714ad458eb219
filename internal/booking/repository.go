package booking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateLocked re-runs the overlap check and inserts the booking as one
	// atomic step with respect to other creations on the same
	// (locationID, spaceID). Returns ErrTimeConflict if the window is taken.
	CreateLocked(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// HasOverlap checks if any confirmed or active booking for the space
	// overlaps the given time range. excludeBookingID is used when
	// re-validating an existing booking.
	HasOverlap(ctx context.Context, locationID, spaceID string, start, end time.Time, excludeBookingID string) (bool, error)

	// ListForSpaceDay loads confirmed and active bookings for the space whose
	// intervals intersect [dayStart, dayEnd], sorted by start time.
	ListForSpaceDay(ctx context.Context, locationID, spaceID string, dayStart, dayEnd time.Time) ([]*Booking, error)

	// ListOverdue loads pending and confirmed bookings whose start time has
	// passed the cutoff without a check-in.
	ListOverdue(ctx context.Context, cutoff time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "user_id", "location_id", "space_id",
	"plate_number", "vehicle_type",
	"start_time", "end_time", "total_amount", "payment_method",
	"status", "payment_status", "qr_code", "ticket_path", "notes",
	"created_at", "updated_at",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.LocationID, &b.SpaceID,
		&b.Vehicle.PlateNumber, &b.Vehicle.VehicleType,
		&b.StartTime, &b.EndTime, &b.TotalAmount, &b.PaymentMethod,
		&b.Status, &b.PaymentStatus, &b.QRCode, &b.TicketPath, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// spaceLockKey derives the 64-bit advisory lock key for a space.
func spaceLockKey(locationID, spaceID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(locationID))
	h.Write([]byte("/"))
	h.Write([]byte(spaceID))
	return int64(h.Sum64())
}

func (r *pgxRepository) CreateLocked(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize creations per space for the rest of the transaction. The
	// lock is released automatically on commit or rollback.
	key := spaceLockKey(b.LocationID, b.SpaceID)
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("acquire space lock failed: %w", err)
	}

	exists, err := hasOverlapQuery(ctx, tx, b.LocationID, b.SpaceID, b.StartTime, b.EndTime, "")
	if err != nil {
		return err
	}
	if exists {
		return ErrTimeConflict
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"user_id", "location_id", "space_id",
			"plate_number", "vehicle_type",
			"start_time", "end_time", "total_amount", "payment_method",
			"status", "payment_status", "qr_code", "ticket_path", "notes",
		).
		Values(
			b.UserID, b.LocationID, b.SpaceID,
			b.Vehicle.PlateNumber, b.Vehicle.VehicleType,
			b.StartTime, b.EndTime, b.TotalAmount, b.PaymentMethod,
			b.Status, b.PaymentStatus, b.QRCode, b.TicketPath, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		// A schema-level exclusion constraint on the interval, if present,
		// is the backstop for the same invariant.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := psql.Select(columns...).From("public.bookings")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.LocationID != "" {
		query = query.Where(squirrel.Eq{"location_id": filter.LocationID})
	}
	if filter.SpaceID != "" {
		query = query.Where(squirrel.Eq{"space_id": filter.SpaceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"start_time": filter.EndTime})
	}

	// Sorting
	orderBy := "start_time"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.LocationID, &b.SpaceID,
			&b.Vehicle.PlateNumber, &b.Vehicle.VehicleType,
			&b.StartTime, &b.EndTime, &b.TotalAmount, &b.PaymentMethod,
			&b.Status, &b.PaymentStatus, &b.QRCode, &b.TicketPath, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("total_amount", b.TotalAmount).
		Set("status", b.Status).
		Set("payment_status", b.PaymentStatus).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// querier abstracts pool vs transaction for the overlap query.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func hasOverlapQuery(ctx context.Context, q querier, locationID, spaceID string, start, end time.Time, excludeBookingID string) (bool, error) {
	// Logic:
	// 1. Same location and space
	// 2. Status blocks the slot (confirmed or active; pending does not)
	// 3. Time overlaps: (ExistingStart < NewEnd) AND (ExistingEnd > NewStart)
	// 4. Exclude specific ID (for extends)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"status": blockingStatuses}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, locationID, spaceID string, start, end time.Time, excludeBookingID string) (bool, error) {
	return hasOverlapQuery(ctx, r.pool, locationID, spaceID, start, end, excludeBookingID)
}

func (r *pgxRepository) ListForSpaceDay(ctx context.Context, locationID, spaceID string, dayStart, dayEnd time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// Interval intersects the day window: starts inside, ends inside, or
	// spans the whole day. All three reduce to the overlap predicate.
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"status": blockingStatuses}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		Where(squirrel.Gt{"end_time": dayStart}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list day bookings query failed: %w", err)
	}

	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListOverdue(ctx context.Context, cutoff time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.Lt{"start_time": cutoff}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list overdue bookings query failed: %w", err)
	}

	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
