package repos_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/architeacher/device-tracker/internal/adapters/repos"
	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

const (
	upsertQuery = `INSERT INTO devices (id,name,brand,state,created_at) VALUES ($1,$2,$3,$4,$5) ` +
		`ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, brand = EXCLUDED.brand, state = EXCLUDED.state`
	fetchQuery  = `SELECT id, name, brand, state, created_at FROM devices WHERE id = $1 LIMIT 1`
	deleteQuery = `DELETE FROM devices WHERE id = $1`
	existsQuery = `SELECT 1 FROM devices WHERE id = $1`
)

func runRepoTest(
	t *testing.T,
	setupMock func(pgxmock.PgxPoolIface),
	testFn func(*testing.T, *repos.DevicesRepository),
) {
	t.Helper()
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	setupMock(mock)

	repo := repos.NewDevicesRepository(mock, repos.NewPgxScanner(), repos.NewExampleTranslator(), logger.NewTestLogger())
	testFn(t, repo)

	require.NoError(t, mock.ExpectationsWereMet())
}

func deviceColumns() []string {
	return []string{"id", "name", "brand", "state", "created_at"}
}

func pagedColumns() []string {
	return []string{"id", "name", "brand", "state", "created_at", "total_count"}
}

func TestDevicesRepository_Save(t *testing.T) {
	t.Parallel()

	t.Run("inserts a new device", func(t *testing.T) {
		device := model.NewDevice("Router", "Acme", model.StateAvailable)

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
					WithArgs(
						device.ID.String(),
						device.Name,
						device.Brand,
						device.State.String(),
						device.CreatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				require.NoError(t, repo.Save(context.Background(), device))
			},
		)
	})

	t.Run("database failure is wrapped as a query error", func(t *testing.T) {
		device := model.NewDevice("Router", "Acme", model.StateAvailable)

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
					WithArgs(
						device.ID.String(),
						device.Name,
						device.Brand,
						device.State.String(),
						device.CreatedAt,
					).
					WillReturnError(errors.New("connection refused"))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				err := repo.Save(context.Background(), device)
				require.ErrorIs(t, err, model.ErrDatabaseQuery)
			},
		)
	})
}

func TestDevicesRepository_FetchByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored device", func(t *testing.T) {
		device := model.NewDevice("Router", "Acme", model.StateInUse)

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(fetchQuery)).
					WithArgs(device.ID.String()).
					WillReturnRows(pgxmock.NewRows(deviceColumns()).
						AddRow(device.ID.String(), device.Name, device.Brand, device.State.String(), device.CreatedAt))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				fetched, err := repo.FetchByID(context.Background(), device.ID)
				require.NoError(t, err)
				require.Equal(t, device.ID, fetched.ID)
				require.Equal(t, device.Name, fetched.Name)
				require.Equal(t, device.Brand, fetched.Brand)
				require.Equal(t, device.State, fetched.State)
			},
		)
	})

	t.Run("missing row yields not found", func(t *testing.T) {
		id := model.NewDeviceID()

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(fetchQuery)).
					WithArgs(id.String()).
					WillReturnRows(pgxmock.NewRows(deviceColumns()))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				_, err := repo.FetchByID(context.Background(), id)
				require.ErrorIs(t, err, model.ErrDeviceNotFound)
			},
		)
	})

	t.Run("database failure is wrapped as a query error", func(t *testing.T) {
		id := model.NewDeviceID()

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(fetchQuery)).
					WithArgs(id.String()).
					WillReturnError(errors.New("connection refused"))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				_, err := repo.FetchByID(context.Background(), id)
				require.ErrorIs(t, err, model.ErrDatabaseQuery)
			},
		)
	})
}

func TestDevicesRepository_FindByExample(t *testing.T) {
	t.Parallel()

	t.Run("unfiltered page with window count", func(t *testing.T) {
		first := model.NewDevice("Router", "Acme", model.StateAvailable)
		second := model.NewDevice("Switch", "Acme", model.StateInactive)

		query := `SELECT id, name, brand, state, created_at, COUNT(*) OVER() AS total_count ` +
			`FROM devices ORDER BY created_at, id LIMIT 20 OFFSET 0`

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WillReturnRows(pgxmock.NewRows(pagedColumns()).
						AddRow(first.ID.String(), first.Name, first.Brand, first.State.String(), first.CreatedAt, uint(42)).
						AddRow(second.ID.String(), second.Name, second.Brand, second.State.String(), second.CreatedAt, uint(42)))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				page, err := repo.FindByExample(context.Background(), model.DeviceData{}, model.PageRequest{Page: 0, Size: 20})
				require.NoError(t, err)
				require.Len(t, page.Devices, 2)
				require.Equal(t, uint(42), page.TotalElements)
				require.Equal(t, first.ID, page.Devices[0].ID)
			},
		)
	})

	t.Run("filter narrows by brand and state", func(t *testing.T) {
		device := model.NewDevice("Router", "Acme", model.StateAvailable)
		brand := "Acme"
		state := model.StateAvailable

		query := `SELECT id, name, brand, state, created_at, COUNT(*) OVER() AS total_count ` +
			`FROM devices WHERE brand = $1 AND state = $2 ORDER BY created_at, id LIMIT 20 OFFSET 20`

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(brand, state.String()).
					WillReturnRows(pgxmock.NewRows(pagedColumns()).
						AddRow(device.ID.String(), device.Name, device.Brand, device.State.String(), device.CreatedAt, uint(21)))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				page, err := repo.FindByExample(
					context.Background(),
					model.DeviceData{Brand: &brand, State: &state},
					model.PageRequest{Page: 1, Size: 20},
				)
				require.NoError(t, err)
				require.Len(t, page.Devices, 1)
				require.Equal(t, uint(21), page.TotalElements)
			},
		)
	})

	t.Run("empty result has zero total", func(t *testing.T) {
		query := `SELECT id, name, brand, state, created_at, COUNT(*) OVER() AS total_count ` +
			`FROM devices ORDER BY created_at, id LIMIT 20 OFFSET 0`

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WillReturnRows(pgxmock.NewRows(pagedColumns()))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				page, err := repo.FindByExample(context.Background(), model.DeviceData{}, model.PageRequest{Page: 0, Size: 20})
				require.NoError(t, err)
				require.Empty(t, page.Devices)
				require.Equal(t, uint(0), page.TotalElements)
			},
		)
	})
}

func TestDevicesRepository_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing device", func(t *testing.T) {
		id := model.NewDeviceID()

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
					WithArgs(id.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				require.NoError(t, repo.Delete(context.Background(), id))
			},
		)
	})

	t.Run("zero affected rows yields not found", func(t *testing.T) {
		id := model.NewDeviceID()

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
					WithArgs(id.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				err := repo.Delete(context.Background(), id)
				require.ErrorIs(t, err, model.ErrDeviceNotFound)
			},
		)
	})
}

func TestDevicesRepository_ExistsByID(t *testing.T) {
	t.Parallel()

	t.Run("existing row reports true", func(t *testing.T) {
		id := model.NewDeviceID()

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
					WithArgs(id.String()).
					WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				exists, err := repo.ExistsByID(context.Background(), id)
				require.NoError(t, err)
				require.True(t, exists)
			},
		)
	})

	t.Run("missing row reports false without an error", func(t *testing.T) {
		id := model.NewDeviceID()

		runRepoTest(t,
			func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
					WithArgs(id.String()).
					WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
			},
			func(t *testing.T, repo *repos.DevicesRepository) {
				exists, err := repo.ExistsByID(context.Background(), id)
				require.NoError(t, err)
				require.False(t, exists)
			},
		)
	})
}

func TestDevicesRepository_Ping(t *testing.T) {
	runRepoTest(t,
		func(mock pgxmock.PgxPoolIface) {
			mock.ExpectPing()
		},
		func(t *testing.T, repo *repos.DevicesRepository) {
			require.NoError(t, repo.Ping(context.Background()))
		},
	)
}

func TestDevicesRepository_LogsQueryFailures(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	device := model.NewDevice("Router", "Acme", model.StateAvailable)
	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs(device.ID.String(), device.Name, device.Brand, device.State.String(), device.CreatedAt).
		WillReturnError(errors.New("connection reset"))

	buf := &bytes.Buffer{}
	repo := repos.NewDevicesRepository(mock, repos.NewPgxScanner(), repos.NewExampleTranslator(), logger.NewBufferedTestLogger(buf))

	err = repo.Save(context.Background(), device)
	require.ErrorIs(t, err, model.ErrDatabaseQuery)

	require.Contains(t, buf.String(), "devices query failed")
	require.Contains(t, buf.String(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}
