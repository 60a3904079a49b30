package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"agentcore/src/model"
	"agentcore/src/validation"
)

func TestRiskEventCreateTranslatesDanglingAgent(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &RiskEventRepository{db: mockDB}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "risk_events"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.RiskEvent{
		AgentID:   999,
		EventType: model.RiskEventEmergencyStop,
		Severity:  model.SeverityCritical,
		Message:   "agent halted by kill switch",
	})

	if !IsDanglingReference(err) {
		t.Fatalf("expected dangling reference failure, got %v", err)
	}

	var verr *validation.Errors
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation-shaped failure, got %T", err)
	}
	if verr.Violations[0].Field != "agent_id" || verr.Violations[0].Kind != validation.KindNotFound {
		t.Fatalf("unexpected violation: %+v", verr.Violations[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestRiskEventCreateAssignsEventUID(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &RiskEventRepository{db: mockDB}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "risk_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(1)))
	mock.ExpectCommit()

	event := &model.RiskEvent{
		AgentID:   1,
		EventType: model.RiskEventDrawdownWarning,
		Severity:  model.SeverityHigh,
		Message:   "drawdown at 8% of peak",
	}

	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("unexpected error creating risk event: %v", err)
	}

	if event.EventUID == "" {
		t.Fatal("expected EventUID to be assigned on create")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestResolveStampsServerTime(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &RiskEventRepository{db: mockDB}

	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	created := now.Add(-3 * time.Hour)

	eventRows := sqlmock.NewRows(
		[]string{"id", "event_uid", "agent_id", "event_type", "severity", "message", "resolved", "created_at"}).
		AddRow(uint(5), "uid-5", uint(1), "drawdown_warning", "high", "msg", false, created)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "risk_events"`).
		WillReturnRows(eventRows)
	mock.ExpectExec(`UPDATE "risk_events"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	event, err := repo.Resolve(context.Background(), 5, now)
	if err != nil {
		t.Fatalf("unexpected error resolving event: %v", err)
	}

	if !event.Resolved {
		t.Fatal("expected event to be resolved")
	}
	if event.ResolvedAt == nil || !event.ResolvedAt.Equal(now) {
		t.Fatalf("expected resolved_at %s, got %v", now, event.ResolvedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestResolveMissingEvent(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &RiskEventRepository{db: mockDB}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "risk_events"`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	_, err := repo.Resolve(context.Background(), 404, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
