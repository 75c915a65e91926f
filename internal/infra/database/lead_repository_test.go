package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/decomly/lead-broker/internal/entity"
)

func TestLeadRepositoryIncrementSoldCount(t *testing.T) {
	t.Run("increments while capacity remains", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE leads`).
			WithArgs("lead-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewLeadRepository(db)
		err = repo.IncrementSoldCount(context.Background(), "lead-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sold out lead updates zero rows and errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE leads`).
			WithArgs("lead-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewLeadRepository(db)
		err = repo.IncrementSoldCount(context.Background(), "lead-1")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeadRepositoryFindByID(t *testing.T) {
	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM leads WHERE id`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		repo := NewLeadRepository(db)
		_, err = repo.FindByID(context.Background(), "nope")

		assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	})
}

func TestLeadRepositoryUpdateStatus(t *testing.T) {
	t.Run("zero affected rows maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE leads SET status`).
			WithArgs(entity.LeadStatusVetted, "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewLeadRepository(db)
		err = repo.UpdateStatus(context.Background(), "nope", entity.LeadStatusVetted)

		assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	})
}
