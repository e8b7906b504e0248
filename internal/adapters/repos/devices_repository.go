package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const devicesTable = "devices"

// Mutable columns only: created_at belongs to the row's first insertion.
const upsertSuffix = "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, brand = EXCLUDED.brand, state = EXCLUDED.state"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type (
	// PoolOps defines the interface for database operations.
	// This allows injecting mock implementations for testing.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// DevicesRepository handles device persistence against Postgres.
	DevicesRepository struct {
		pool       PoolOps
		scanner    Scanner
		translator *ExampleTranslator
		logger     logger.Logger
	}

	deviceRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Brand     string    `db:"brand"`
		State     string    `db:"state"`
		CreatedAt time.Time `db:"created_at"`
	}

	deviceRowWithCount struct {
		deviceRow
		TotalCount uint `db:"total_count"`
	}
)

func NewDevicesRepository(
	pool PoolOps,
	scanner Scanner,
	translator *ExampleTranslator,
	log logger.Logger,
) *DevicesRepository {
	return &DevicesRepository{
		pool:       pool,
		scanner:    scanner,
		translator: translator,
		logger:     log,
	}
}

// queryError logs the failed statement and wraps it as a transient storage
// error so the resilience layer retries it.
func (r *DevicesRepository) queryError(ctx context.Context, operation string, err error) error {
	reqLog := r.logger.WithContext(ctx)
	reqLog.Error().Err(err).Str("operation", operation).Msg("devices query failed")

	return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
}

// Save inserts the device or, when the identifier already exists, replaces
// its name, brand, and state. The stored creation time is never touched.
func (r *DevicesRepository) Save(ctx context.Context, device *model.Device) error {
	query, args, err := psql.Insert(devicesTable).
		Columns("id", "name", "brand", "state", "created_at").
		Values(
			device.ID.String(),
			device.Name,
			device.Brand,
			device.State.String(),
			device.CreatedAt,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return r.queryError(ctx, "save", err)
	}

	return nil
}

func (r *DevicesRepository) FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	query, args, err := psql.Select("id", "name", "brand", "state", "created_at").
		From(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.queryError(ctx, "fetch", err)
	}
	defer rows.Close()

	var row deviceRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, model.ErrDeviceNotFound
		}

		return nil, r.queryError(ctx, "fetch", err)
	}

	return r.convertRowToDevice(row)
}

// FindByExample pages through devices matching the populated fields of the
// example. Rows come back in insertion order (created_at, id) so paging is
// stable across requests against unchanged data.
func (r *DevicesRepository) FindByExample(
	ctx context.Context,
	example model.DeviceData,
	page model.PageRequest,
) (*model.DevicePage, error) {
	builder := psql.Select(
		"id", "name", "brand", "state", "created_at",
		"COUNT(*) OVER() AS total_count",
	).
		From(devicesTable).
		OrderBy("created_at", "id").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))

	if conditions := r.translator.Conditions(example); len(conditions) > 0 {
		builder = builder.Where(conditions)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.queryError(ctx, "list", err)
	}
	defer rows.Close()

	var deviceRows []deviceRowWithCount
	if err := r.scanner.ScanAll(&deviceRows, rows); err != nil {
		return nil, r.queryError(ctx, "list", err)
	}

	result := &model.DevicePage{
		Devices: make([]*model.Device, 0, len(deviceRows)),
		Request: page,
	}

	if len(deviceRows) == 0 {
		return result, nil
	}

	result.TotalElements = deviceRows[0].TotalCount

	for index := range deviceRows {
		device, err := r.convertRowToDevice(deviceRows[index].deviceRow)
		if err != nil {
			return nil, err
		}

		result.Devices = append(result.Devices, device)
	}

	return result, nil
}

func (r *DevicesRepository) ExistsByID(ctx context.Context, id model.DeviceID) (bool, error) {
	query, args, err := psql.Select("1").
		From(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build select query: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, r.queryError(ctx, "exists", err)
	}

	return true, nil
}

func (r *DevicesRepository) Delete(ctx context.Context, id model.DeviceID) error {
	query, args, err := psql.Delete(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return r.queryError(ctx, "delete", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrDeviceNotFound
	}

	return nil
}

func (r *DevicesRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *DevicesRepository) convertRowToDevice(row deviceRow) (*model.Device, error) {
	id, err := model.ParseDeviceID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidDeviceID, err)
	}

	state, ok := model.StateFromWire(row.State)
	if !ok {
		return nil, fmt.Errorf("%w: unknown state %q", model.ErrDatabaseQuery, row.State)
	}

	return &model.Device{
		ID:        id,
		Name:      row.Name,
		Brand:     row.Brand,
		State:     state,
		CreatedAt: row.CreatedAt,
	}, nil
}
