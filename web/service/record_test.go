package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dukcapil-minsel/suket/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

var testRecords = []model.CaseRecord{
	{RegisterNumber: "2024/123", DecisionDate: "01-02-2024", Plaintiff: "Ani", Defendant: "Budi", ServiceDate: "05-02-2024", Status: "Inkracht"},
	{RegisterNumber: "2024/ABC", DecisionDate: "03-03-2024", Plaintiff: "Citra", Defendant: "Dodi", Status: "Proses"},
	{DecisionDate: "04-04-2024", Plaintiff: "Eka", Defendant: "Fajar", Status: "Draft"},
}

func TestFilterRecords(t *testing.T) {
	assert.Len(t, filterRecords(testRecords, ""), 3)

	got := filterRecords(testRecords, "2024/abc")
	require.Len(t, got, 1)
	assert.Equal(t, "2024/ABC", got[0].RegisterNumber)

	assert.Empty(t, filterRecords(testRecords, "2024/999"))
	assert.Empty(t, filterRecords(testRecords, "2024"))
}

func TestMemoryRecordProvider(t *testing.T) {
	p := NewMemoryRecordProvider(testRecords...)

	got, err := p.Fetch(context.Background(), "2024/123")
	require.NoError(t, err)
	assert.Equal(t, testRecords[:1], got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Fetch(ctx, "2024/123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.toml")
	content := `[[record]]
register_number = "2024/123"
decision_date = "01-02-2024"
plaintiff = "Ani"
defendant = "Budi"
service_date = "05-02-2024"
status = "Inkracht"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := LoadRecordsFile(path)
	require.NoError(t, err)
	got, err := p.Fetch(context.Background(), "2024/123")
	require.NoError(t, err)
	assert.Equal(t, testRecords[:1], got)
}

const sheetsResponse = `{
  "range": "Database!A1:F4",
  "majorDimension": "ROWS",
  "values": [
    ["Nomor Register", "Tanggal Putus", "Penggugat", "Tergugat", "Tanggal Relaas", "Status"],
    ["2024/123", "01-02-2024", "Ani", "Budi", "05-02-2024", "Inkracht"],
    ["2024/124", "02-02-2024", "Citra"]
  ]
}`

func newSheetsTestProvider(t *testing.T, handler http.HandlerFunc) *SheetsRecordProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSheetsRecordProvider(
		SheetsConfig{SpreadsheetID: "sheet-id", Range: "Database!A:F"},
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
}

func TestSheetsRecordProviderFetch(t *testing.T) {
	var paths []string
	p := newSheetsTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sheetsResponse))
	})

	all, err := p.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := p.Fetch(context.Background(), "2024/124")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.CaseRecord{RegisterNumber: "2024/124", DecisionDate: "02-02-2024", Plaintiff: "Citra"}, got[0])

	require.NotEmpty(t, paths)
	assert.True(t, strings.Contains(paths[0], "/spreadsheets/sheet-id/values/"), paths[0])
}

func TestSheetsRecordProviderFailure(t *testing.T) {
	p := newSheetsTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	got, err := p.Fetch(context.Background(), "2024/123")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Empty(t, got)
}
