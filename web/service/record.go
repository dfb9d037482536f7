package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dukcapil-minsel/suket/model"

	"github.com/pelletier/go-toml/v2"
)

// RecordProvider reads case records. An empty filterKey returns every row;
// otherwise only rows whose register number equals it, ignoring case.
type RecordProvider interface {
	Fetch(ctx context.Context, filterKey string) ([]model.CaseRecord, error)
}

func filterRecords(records []model.CaseRecord, key string) []model.CaseRecord {
	if key == "" {
		return records
	}
	matched := make([]model.CaseRecord, 0, 1)
	for _, r := range records {
		if r.RegisterNumber != "" && strings.EqualFold(r.RegisterNumber, key) {
			matched = append(matched, r)
		}
	}
	return matched
}

// MemoryRecordProvider serves a fixed slice of records.
type MemoryRecordProvider struct {
	records []model.CaseRecord
}

func NewMemoryRecordProvider(records ...model.CaseRecord) *MemoryRecordProvider {
	return &MemoryRecordProvider{records: records}
}

type recordsFile struct {
	Records []model.CaseRecord `toml:"record"`
}

// LoadRecordsFile reads a TOML file of [[record]] tables.
func LoadRecordsFile(path string) (*MemoryRecordProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f recordsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewMemoryRecordProvider(f.Records...), nil
}

func (p *MemoryRecordProvider) Fetch(ctx context.Context, filterKey string) ([]model.CaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterRecords(p.records, filterKey), nil
}
