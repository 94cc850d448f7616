package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"sluice-scada/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockDB creates a sqlmock database with expectation checking on cleanup.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var gateColumns = []string{"id", "name", "position", "status", "last_updated"}

func TestGetGate_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	updated := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, COALESCE\(name, ''\), position, status, last_updated\s+FROM gates`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(gateColumns).AddRow(2, "GATE A", 40, "idle", updated))

	gate, err := repo.GetGate(context.Background(), domain.GateA)
	require.NoError(t, err)
	assert.Equal(t, domain.GateA, gate.ID)
	assert.Equal(t, "GATE A", gate.Name)
	assert.Equal(t, 40, gate.Position)
	assert.Equal(t, domain.GateStatusIdle, gate.Status)
	assert.Equal(t, updated, gate.LastUpdated)
}

func TestGetGate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	mock.ExpectQuery(`FROM gates`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(gateColumns))

	_, err := repo.GetGate(context.Background(), domain.GateB)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGates_OrderedByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	now := time.Now()
	mock.ExpectQuery(`ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(gateColumns).
			AddRow(1, "MAIN GATE", 0, "idle", now).
			AddRow(2, "GATE A", 100, "moving", now).
			AddRow(3, "GATE B", 0, "error", now))

	gates, err := repo.ListGates(context.Background())
	require.NoError(t, err)
	require.Len(t, gates, 3)
	assert.Equal(t, domain.GateMain, gates[0].ID)
	assert.Equal(t, domain.GateStatusMoving, gates[1].Status)
	assert.Equal(t, domain.GateStatusError, gates[2].Status)
}

func TestUpdateCommandedPosition_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE gates SET status = $1, position = $2, last_updated = $3 WHERE id = $4`)).
		WithArgs("moving", 100, at, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCommandedPosition(context.Background(), domain.GateA, 100, domain.GateStatusMoving, at)
	assert.NoError(t, err)
}

func TestUpdateCommandedPosition_NoRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	mock.ExpectExec(`UPDATE gates`).
		WithArgs("moving", 0, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCommandedPosition(context.Background(), domain.GateMain, 0, domain.GateStatusMoving, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCommandedPosition_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	dbErr := errors.New("connection reset")
	mock.ExpectExec(`UPDATE gates`).WillReturnError(dbErr)

	err := repo.UpdateCommandedPosition(context.Background(), domain.GateB, 30, domain.GateStatusMoving, time.Now())
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUpdateCommandedPositionWithHistory_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	entry := domain.GateHistory{
		GateID:      domain.GateA,
		Action:      domain.ActionControlCommand,
		Details:     domain.CommandDetails("open", 100),
		PerformedBy: 7,
		CreatedAt:   at,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE gates`).
		WithArgs("moving", 100, at, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO gate_history`).
		WithArgs(2, "control_command", "Command: open, Target: 100", int64(7), at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	id, err := repo.UpdateCommandedPositionWithHistory(context.Background(), 100, domain.GateStatusMoving, entry)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestUpdateCommandedPositionWithHistory_RollsBackOnAuditFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	entry := domain.GateHistory{
		GateID:      domain.GateB,
		Action:      domain.ActionControlCommand,
		Details:     domain.CommandDetails("close", 0),
		PerformedBy: 3,
		CreatedAt:   time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE gates`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO gate_history`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.UpdateCommandedPositionWithHistory(context.Background(), 0, domain.GateStatusMoving, entry)
	assert.Error(t, err)
}

func TestUpdateCommandedPositionWithHistory_MissingGateRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresGatesRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE gates`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.UpdateCommandedPositionWithHistory(context.Background(), 50, domain.GateStatusMoving,
		domain.GateHistory{GateID: domain.GateMain, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)
}
