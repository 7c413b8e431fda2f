package services

import (
	"context"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

var testLayout = model.UnitLayout{RoomCount: 4, FlexBed: false, DefaultNurses: 2}

// mockStore implements db.BoardStore and db.RunStore in memory
type mockStore struct {
	board   *model.Snapshot
	runs    []db.AssignmentRun
	saves   int
	getErr  error
	saveErr error
	runErr  error
}

func (m *mockStore) GetBoard(ctx context.Context) (*model.Snapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.board == nil {
		return nil, db.ErrNotFound
	}
	s := m.board.Clone()
	return &s, nil
}

func (m *mockStore) SaveBoard(ctx context.Context, board model.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	s := board.Clone()
	m.board = &s
	m.saves++
	return nil
}

func (m *mockStore) GetRuns(ctx context.Context) ([]db.AssignmentRun, error) {
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.runs, nil
}

func (m *mockStore) InsertRun(ctx context.Context, run *db.AssignmentRun) error {
	if m.runErr != nil {
		return m.runErr
	}
	m.runs = append(m.runs, *run)
	return nil
}

// mockSheets records published tabs
type mockSheets struct {
	spreadsheetID string
	tab           string
	rows          [][]string
	err           error
}

func (m *mockSheets) PublishBoard(spreadsheetID, tabTitle string, rows [][]string) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID, m.tab, m.rows = spreadsheetID, tabTitle, rows
	return nil
}

// mockMail records sent emails
type mockMail struct {
	from    string
	to      []string
	subject string
	body    string
	sent    int
}

func (m *mockMail) SendEmail(from string, to []string, subject, body string) error {
	m.from, m.to, m.subject, m.body = from, to, subject, body
	m.sent++
	return nil
}

// smallUnit is a four room board with two nurses
func smallUnit() *model.Snapshot {
	return &model.Snapshot{
		Nurses: []model.Nurse{
			{ID: "n1", Name: "Alice"},
			{ID: "n2", Name: "Bea", NoChemo: true},
		},
		Rooms: []model.Room{
			{ID: "1", Diagnosis: "Allo", Acuity: 4, IMC: true, RN: model.Unassigned},
			{ID: "2", Diagnosis: "Chemo", Acuity: 2, Chemo: true, RN: model.Unassigned},
			{ID: "3", Diagnosis: "Auto", Acuity: 3, Admit: true, RN: model.Unassigned},
			{ID: "4", Diagnosis: "CART", Acuity: 2, RN: model.Unassigned},
		},
	}
}
