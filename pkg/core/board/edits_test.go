package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

func testBoard() model.Snapshot {
	return model.Snapshot{
		Nurses: []model.Nurse{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bea", Locked: true},
			{ID: "c", Name: ""},
		},
		Rooms: []model.Room{
			{ID: "1", Diagnosis: "Auto", Acuity: 3, RN: "a"},
			{ID: "2", Diagnosis: "Allo", Acuity: 4, RN: "b", Chemo: true},
			{ID: "3", Diagnosis: "CART", Acuity: 2, RN: "a", Locked: true},
			{ID: "4", Diagnosis: "Chemo", Acuity: 1, RN: model.Unassigned, Admit: true},
			{ID: model.FlexBed, Diagnosis: "", Acuity: 0, RN: model.Unassigned},
		},
	}
}

func rns(s model.Snapshot) []model.NurseID {
	var out []model.NurseID
	for _, r := range s.Rooms {
		out = append(out, r.RN)
	}
	return out
}

func TestClearAssignments(t *testing.T) {
	board := testBoard()
	out := ClearAssignments(board)

	assert.Equal(t, []model.NurseID{"-", "b", "a", "-", "-"}, rns(out))
	assert.Equal(t, model.NurseID("a"), board.Rooms[0].RN, "input untouched")
}

func TestClearRooms(t *testing.T) {
	out := ClearRooms(testBoard())

	assert.Equal(t, model.DefaultRoom("1"), out.Rooms[0])
	assert.Equal(t, "Pt 2", out.Rooms[1].Diagnosis)
	assert.False(t, out.Rooms[1].Chemo)
	assert.Equal(t, model.Unassigned, out.Rooms[1].RN)
	assert.Equal(t, "CART", out.Rooms[2].Diagnosis, "locked room kept")
	assert.Equal(t, "", out.Rooms[4].Diagnosis)
	assert.Equal(t, model.Acuity(2), out.Rooms[4].Acuity)
}

func TestParseRoomList(t *testing.T) {
	ids, err := ParseRoomList(" 1, 2  h,,4 2")
	require.NoError(t, err)
	assert.Equal(t, []model.RoomID{"1", "2", model.FlexBed, "4"}, ids)

	ids, err = ParseRoomList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseRoomList("1, x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetNurseRooms(t *testing.T) {
	out, err := SetNurseRooms(testBoard(), "a", "3 4, H")
	require.NoError(t, err)

	assert.Equal(t, []model.NurseID{"-", "b", "a", "a", "a"}, rns(out))
}

func TestSetNurseRooms_Errors(t *testing.T) {
	_, err := SetNurseRooms(testBoard(), "c", "1")
	assert.ErrorIs(t, err, ErrNurseNotFound, "inactive nurse")

	_, err = SetNurseRooms(testBoard(), "zzz", "1")
	assert.ErrorIs(t, err, ErrNurseNotFound)

	_, err = SetNurseRooms(testBoard(), "a", "1, 31")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestAddNurse(t *testing.T) {
	out, nurse, err := AddNurse(testBoard(), "")
	require.NoError(t, err)
	assert.Equal(t, "RN 4", nurse.Name)
	assert.NotEmpty(t, nurse.ID)
	require.Len(t, out.Nurses, 4)
	assert.Equal(t, nurse, out.Nurses[3])

	_, _, err = AddNurse(testBoard(), " alice ")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRenameNurse_KeepsAssignments(t *testing.T) {
	out, err := RenameNurse(testBoard(), "a", "Alicia")
	require.NoError(t, err)

	assert.Equal(t, "Alicia", out.Nurses[0].Name)
	assert.Equal(t, model.NurseID("a"), out.Rooms[0].RN)

	_, err = RenameNurse(testBoard(), "a", "BEA")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = RenameNurse(testBoard(), "a", "alice")
	assert.NoError(t, err, "renaming to own name in another case is allowed")

	_, err = RenameNurse(testBoard(), "zzz", "New")
	assert.ErrorIs(t, err, ErrNurseNotFound)
}

func TestRemoveNurse(t *testing.T) {
	out, err := RemoveNurse(testBoard(), "a")
	require.NoError(t, err)

	require.Len(t, out.Nurses, 2)
	assert.Equal(t, []model.NurseID{"-", "b", "-", "-", "-"}, rns(out))

	_, err = RemoveNurse(testBoard(), "zzz")
	assert.ErrorIs(t, err, ErrNurseNotFound)
}

func TestSetNurseFlags(t *testing.T) {
	yes, no := true, false
	out, err := SetNurseFlags(testBoard(), "b", NurseFlags{Locked: &no, NoChemo: &yes})
	require.NoError(t, err)

	assert.False(t, out.Nurses[1].Locked)
	assert.True(t, out.Nurses[1].NoChemo)

	out, err = SetNurseFlags(out, "b", NurseFlags{})
	require.NoError(t, err)
	assert.True(t, out.Nurses[1].NoChemo)
}

func TestUpdateRoom(t *testing.T) {
	tx := "Allo"
	acuity := 4
	yes := true
	name := "bea"

	out, err := UpdateRoom(testBoard(), "4", RoomUpdate{Diagnosis: &tx, Acuity: &acuity, IMC: &yes, NurseName: &name})
	require.NoError(t, err)

	room := out.Rooms[3]
	assert.Equal(t, "Allo", room.Diagnosis)
	assert.Equal(t, model.Acuity(4), room.Acuity)
	assert.True(t, room.IMC)
	assert.True(t, room.Admit, "untouched flag kept")
	assert.Equal(t, model.NurseID("b"), room.RN)
}

func TestUpdateRoom_Errors(t *testing.T) {
	bad := 7
	_, err := UpdateRoom(testBoard(), "1", RoomUpdate{Acuity: &bad})
	assert.ErrorContains(t, err, "invalid room update")

	_, err = UpdateRoom(testBoard(), "99", RoomUpdate{})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	ghost := "ghost"
	_, err = UpdateRoom(testBoard(), "1", RoomUpdate{NurseID: &ghost})
	assert.ErrorIs(t, err, ErrNurseNotFound)

	dash := "-"
	out, err := UpdateRoom(testBoard(), "1", RoomUpdate{NurseID: &dash})
	require.NoError(t, err)
	assert.Equal(t, model.Unassigned, out.Rooms[0].RN)
}

func TestToggleRoomLock(t *testing.T) {
	out, err := ToggleRoomLock(testBoard(), "3")
	require.NoError(t, err)
	assert.False(t, out.Rooms[2].Locked)

	out, err = ToggleRoomLock(out, "3")
	require.NoError(t, err)
	assert.True(t, out.Rooms[2].Locked)
}
