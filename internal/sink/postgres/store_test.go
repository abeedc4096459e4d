package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

func testRecord() jobs.Record {
	company := "Acme"
	posted := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	jobKey := "REQ-77"
	pageURL := "https://jobs.example.com/77"
	salary := 39520.0
	city := "St. Paul"
	zipcode := "55101"
	return jobs.Record{
		ID:              "rec-1",
		CompanyName:     &company,
		PostedAt:        &posted,
		JobKey:          &jobKey,
		JobPageURL:      &pageURL,
		AnnualSalaryAvg: &salary,
		City:            &city,
		Zipcode:         &zipcode,
	}
}

func TestWriteUpsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, zap.NewNop())
	require.NoError(t, err)

	rec := testRecord()
	zip := int32(55101)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(
			rec.ID,
			rec.CompanyName,
			rec.PostedAt,
			rec.JobKey,
			rec.JobPageURL,
			rec.AnnualSalaryAvg,
			rec.City,
			&zip,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(rec.ID))
	mock.ExpectCommit()

	require.NoError(t, store.Write(context.Background(), rec))
	require.Equal(t, int64(1), store.Persisted())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteNullableFields(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, zap.NewNop())
	require.NoError(t, err)

	company := jobs.UnknownCompany
	rec := jobs.Record{ID: "rec-2", CompanyName: &company}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(
			rec.ID,
			rec.CompanyName,
			(*time.Time)(nil),
			(*string)(nil),
			(*string)(nil),
			(*float64)(nil),
			(*string)(nil),
			(*int32)(nil),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(rec.ID))
	mock.ExpectCommit()

	require.NoError(t, store.Write(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, zap.NewNop())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err = store.Write(context.Background(), testRecord())
	require.Error(t, err)
	require.Contains(t, err.Error(), "upsert job rec-1")
	require.Equal(t, int64(0), store.Persisted())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestZipcodeColumn(t *testing.T) {
	t.Parallel()

	require.Nil(t, zipcodeColumn(nil))

	zip := "00501"
	got := zipcodeColumn(&zip)
	require.NotNil(t, got)
	require.Equal(t, int32(501), *got)
}

func TestNewWithPoolRequiresPool(t *testing.T) {
	t.Parallel()

	_, err := NewWithPool(nil, zap.NewNop())
	require.Error(t, err)
}
