package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, int, error)

	// UpdateSpaceStatus flips a space's advisory status flag.
	UpdateSpaceStatus(ctx context.Context, locationID, spaceID string, status SpaceStatus) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Location, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "address", "is_active", "current_status",
		"operating_hours_start", "operating_hours_end", "hourly_rate",
		"created_at", "updated_at",
	).
		From("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get location query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var l Location
	if err := row.Scan(
		&l.ID, &l.Name, &l.Address, &l.IsActive, &l.CurrentStatus,
		&l.OperatingHoursStart, &l.OperatingHoursEnd, &l.HourlyRate,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get location failed: %w", err)
	}

	spaces, err := r.listSpaces(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Spaces = spaces

	return &l, nil
}

func (r *pgxRepository) listSpaces(ctx context.Context, locationID string) ([]Space, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("space_id", "status").
		From("public.parking_spaces").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("space_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list spaces query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spaces failed: %w", err)
	}
	defer rows.Close()

	var spaces []Space
	for rows.Next() {
		var s Space
		if err := rows.Scan(&s.SpaceID, &s.Status); err != nil {
			return nil, fmt.Errorf("scan space failed: %w", err)
		}
		spaces = append(spaces, s)
	}

	return spaces, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Location, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "address", "is_active", "current_status",
		"operating_hours_start", "operating_hours_end", "hourly_rate",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.locations")

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"current_status": filter.Status})
	}

	query = query.OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("build list locations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations failed: %w", err)
	}
	defer rows.Close()

	var locations []*Location
	var total int

	for rows.Next() {
		var l Location
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Address, &l.IsActive, &l.CurrentStatus,
			&l.OperatingHoursStart, &l.OperatingHoursEnd, &l.HourlyRate,
			&l.CreatedAt, &l.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan location failed: %w", err)
		}
		locations = append(locations, &l)
	}

	return locations, total, nil
}

func (r *pgxRepository) UpdateSpaceStatus(ctx context.Context, locationID, spaceID string, status SpaceStatus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.parking_spaces").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update space status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update space status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
