package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonFiller stands in for the PDF library: it checks the template was
// handed over and stores the field values as JSON.
type jsonFiller struct {
	template []byte
	err      error
}

func (f *jsonFiller) Fill(template io.ReadSeeker, values map[string]string, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	tpl, err := io.ReadAll(template)
	if err != nil {
		return err
	}
	f.template = tpl
	return json.NewEncoder(w).Encode(values)
}

func readJSONFields(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func newCertificateFixture(t *testing.T, filler FormFiller) (*CertificateService, string) {
	t.Helper()
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.pdf")
	require.NoError(t, os.WriteFile(tplPath, []byte("%PDF-template"), 0o600))
	outDir := filepath.Join(dir, "surat_keterangan")
	return NewCertificateService(NewMemoryRecordProvider(testRecords...), filler, tplPath, outDir), outDir
}

func TestCertificateFileName(t *testing.T) {
	tests := map[string]string{
		"2024/123":         "2024-123.pdf",
		"../../etc/passwd": "etc-passwd.pdf",
		`C:\temp\x`:        "c-temp-x.pdf",
		"///":              "surat-keterangan.pdf",
		"12/Pdt.G/2024/PN": "12-pdt-g-2024-pn.pdf",
	}
	for in, want := range tests {
		got := CertificateFileName(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, filepath.Base(got), in)
	}
}

func TestGenerateFillsAllFields(t *testing.T) {
	filler := &jsonFiller{}
	s, outDir := newCertificateFixture(t, filler)

	path, err := s.Generate(context.Background(), "2024/123")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "2024-123.pdf"), path)
	assert.Equal(t, []byte("%PDF-template"), filler.template)

	r := testRecords[0]
	assert.Equal(t, map[string]string{
		FieldRegisterNumber: r.RegisterNumber,
		FieldDecisionDate:   r.DecisionDate,
		FieldPlaintiff:      r.Plaintiff,
		FieldDefendant:      r.Defendant,
		FieldServiceDate:    r.ServiceDate,
		FieldStatus:         r.Status,
	}, readJSONFields(t, path))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestGenerateMissingCellsAreEmpty(t *testing.T) {
	s, _ := newCertificateFixture(t, &jsonFiller{})

	path, err := s.Generate(context.Background(), "2024/abc")
	require.NoError(t, err)
	got := readJSONFields(t, path)
	assert.Equal(t, "", got[FieldServiceDate])
	assert.Equal(t, "2024/ABC", got[FieldRegisterNumber])
}

func TestGenerateOverwrites(t *testing.T) {
	s, _ := newCertificateFixture(t, &jsonFiller{})

	first, err := s.Generate(context.Background(), "2024/123")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first, []byte("stale"), 0o644))

	second, err := s.Generate(context.Background(), "2024/123")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Budi", readJSONFields(t, second)[FieldDefendant])
}

func TestGenerateNotFoundTouchesNothing(t *testing.T) {
	s, outDir := newCertificateFixture(t, &jsonFiller{})

	_, err := s.Generate(context.Background(), "2024/999")
	assert.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, os.MkdirAll(outDir, 0o755))
	existing := filepath.Join(outDir, "2024-999.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))
	_, err = s.Generate(context.Background(), "2024/999")
	assert.ErrorIs(t, err, ErrNotFound)
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	_, err = s.Generate(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateFailures(t *testing.T) {
	s, outDir := newCertificateFixture(t, &jsonFiller{err: errors.New("no such field")})
	_, err := s.Generate(context.Background(), "2024/123")
	assert.ErrorIs(t, err, ErrGeneration)
	_, statErr := os.Stat(filepath.Join(outDir, "2024-123.pdf"))
	assert.True(t, os.IsNotExist(statErr))

	missingTpl := NewCertificateService(NewMemoryRecordProvider(testRecords...), &jsonFiller{},
		filepath.Join(t.TempDir(), "missing.pdf"), t.TempDir())
	_, err = missingTpl.Generate(context.Background(), "2024/123")
	assert.ErrorIs(t, err, ErrGeneration)

	down := NewCertificateService(&recordingProvider{err: ErrProviderUnavailable}, &jsonFiller{}, "", t.TempDir())
	_, err = down.Generate(context.Background(), "2024/123")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestPrune(t *testing.T) {
	s, outDir := newCertificateFixture(t, &jsonFiller{})

	n, err := s.Prune(time.Hour, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, os.MkdirAll(outDir, 0o755))
	now := time.Now()
	old := filepath.Join(outDir, "old.pdf")
	fresh := filepath.Join(outDir, "fresh.pdf")
	other := filepath.Join(outDir, "notes.txt")
	for _, p := range []string{old, fresh, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	require.NoError(t, os.Chtimes(old, now.Add(-48*time.Hour), now.Add(-48*time.Hour)))
	require.NoError(t, os.Chtimes(other, now.Add(-48*time.Hour), now.Add(-48*time.Hour)))

	n, err = s.Prune(24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other)
}
