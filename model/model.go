// Package model holds the panel's domain types: staff credentials, roles and
// the case records read from the register spreadsheet.
package model

import "fmt"

type Role string

const (
	Administrator Role = "administrator"
	Guest         Role = "guest"
)

// ParseRole accepts the stored form of a role. Anything unrecognised is a guest.
func ParseRole(s string) Role {
	if Role(s) == Administrator {
		return Administrator
	}
	return Guest
}

func (r Role) IsAdmin() bool {
	return r == Administrator
}

type Credential struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
	Role         Role   `toml:"role"`
}

// CaseRecord is one row of the register, columns A to F.
type CaseRecord struct {
	RegisterNumber string `toml:"register_number"`
	DecisionDate   string `toml:"decision_date"`
	Plaintiff      string `toml:"plaintiff"`
	Defendant      string `toml:"defendant"`
	ServiceDate    string `toml:"service_date"`
	Status         string `toml:"status"`
}

// RecordFromRow coerces a raw spreadsheet row. Missing trailing cells are
// empty strings and cells past the sixth are ignored.
func RecordFromRow(row []any) CaseRecord {
	cell := func(i int) string {
		if i >= len(row) || row[i] == nil {
			return ""
		}
		if s, ok := row[i].(string); ok {
			return s
		}
		return fmt.Sprint(row[i])
	}
	return CaseRecord{
		RegisterNumber: cell(0),
		DecisionDate:   cell(1),
		Plaintiff:      cell(2),
		Defendant:      cell(3),
		ServiceDate:    cell(4),
		Status:         cell(5),
	}
}

// AdminRecord is the full view shown to administrators.
type AdminRecord struct {
	RegisterNumber string
	DecisionDate   string
	Plaintiff      string
	Defendant      string
	ServiceDate    string
	Status         string
}

// GuestRecord is the restricted view shown to everybody else.
type GuestRecord struct {
	RegisterNumber string
	DecisionDate   string
	Status         string
}

func (r CaseRecord) Admin() AdminRecord {
	return AdminRecord(r)
}

func (r CaseRecord) Guest() GuestRecord {
	return GuestRecord{
		RegisterNumber: r.RegisterNumber,
		DecisionDate:   r.DecisionDate,
		Status:         r.Status,
	}
}
