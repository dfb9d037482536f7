package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, Administrator, ParseRole("administrator"))
	assert.Equal(t, Guest, ParseRole("guest"))
	assert.Equal(t, Guest, ParseRole(""))
	assert.Equal(t, Guest, ParseRole("Administrator"))
}

func TestRecordFromRow(t *testing.T) {
	tests := []struct {
		name string
		row  []any
		want CaseRecord
	}{
		{
			name: "full row",
			row:  []any{"2024/123", "01-02-2024", "Ani", "Budi", "05-02-2024", "Inkracht"},
			want: CaseRecord{"2024/123", "01-02-2024", "Ani", "Budi", "05-02-2024", "Inkracht"},
		},
		{
			name: "short row",
			row:  []any{"2024/124", "01-02-2024"},
			want: CaseRecord{RegisterNumber: "2024/124", DecisionDate: "01-02-2024"},
		},
		{
			name: "extra and non-string cells",
			row:  []any{125, nil, "A", "B", "C", "D", "ignored"},
			want: CaseRecord{"125", "", "A", "B", "C", "D"},
		},
		{
			name: "empty row",
			row:  nil,
			want: CaseRecord{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecordFromRow(tt.row))
		})
	}
}

func TestGuestProjectionOmitsPrivateFields(t *testing.T) {
	typ := reflect.TypeOf(GuestRecord{})
	for _, f := range []string{"Plaintiff", "Defendant", "ServiceDate"} {
		_, ok := typ.FieldByName(f)
		assert.False(t, ok, f)
	}

	r := CaseRecord{"2024/123", "01-02-2024", "Ani", "Budi", "05-02-2024", "Inkracht"}
	assert.Equal(t, GuestRecord{"2024/123", "01-02-2024", "Inkracht"}, r.Guest())
}

func TestAdminProjectionKeepsSourceOrder(t *testing.T) {
	typ := reflect.TypeOf(AdminRecord{})
	want := []string{"RegisterNumber", "DecisionDate", "Plaintiff", "Defendant", "ServiceDate", "Status"}
	if assert.Equal(t, len(want), typ.NumField()) {
		for i, name := range want {
			assert.Equal(t, name, typ.Field(i).Name)
		}
	}

	r := CaseRecord{"2024/123", "01-02-2024", "Ani", "Budi", "05-02-2024", "Inkracht"}
	a := r.Admin()
	assert.Equal(t, r.Plaintiff, a.Plaintiff)
	assert.Equal(t, r.ServiceDate, a.ServiceDate)
}
