// internal/leadstore/store_test.go
package leadstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/enrichment"
)

func testRequest() enrichment.Request {
	return enrichment.Request{
		BusinessName: "Tony's Pizza",
		City:         "Brooklyn",
		State:        "NY",
	}
}

func TestStore_SaveResult_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("Tony's Pizza", "Brooklyn", "NY").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO lead_enrichments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewStore(db, logger.NewTestLogger(t))
	record, err := store.SaveResult(context.Background(), testRequest(), &enrichment.Result{
		Name:       "Tony Russo",
		Title:      "Owner",
		Confidence: 95,
		Source:     "https://tonyspizza.com/about",
		Email: &enrichment.EmailCandidate{
			Email: "tony@tonyspizza.com",
			Type:  enrichment.EmailTypePersonal,
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.NotEmpty(t, record.ID)
	assert.True(t, record.Found)
	assert.Equal(t, "Tony Russo", record.Name)
	assert.Equal(t, "tony@tonyspizza.com", record.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveResult_NegativeOutcome(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO lead_enrichments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewStore(db, logger.NewTestLogger(t))
	record, err := store.SaveResult(context.Background(), testRequest(), nil)

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.False(t, record.Found)
	assert.Empty(t, record.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveResult_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	store := NewStore(db, logger.NewTestLogger(t))
	record, err := store.SaveResult(context.Background(), testRequest(), nil)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateLead))
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveResult_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO lead_enrichments").
		WillReturnError(errors.New("connection reset"))

	store := NewStore(db, logger.NewTestLogger(t))
	record, err := store.SaveResult(context.Background(), testRequest(), nil)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrLeadPersistFailed))
	assert.Nil(t, record)
}
