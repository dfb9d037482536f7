package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/model"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Names of the text fields in the certificate template.
const (
	FieldRegisterNumber = "NomorRegister"
	FieldDecisionDate   = "TanggalPutus"
	FieldPlaintiff      = "penggugat"
	FieldDefendant      = "Tergugat"
	FieldServiceDate    = "TanggalRelaas"
	FieldStatus         = "Status"
)

// FormFiller writes template to w with the named text fields set.
type FormFiller interface {
	Fill(template io.ReadSeeker, values map[string]string, w io.Writer) error
}

// CertificateFields maps a record onto the template's field names.
func CertificateFields(r model.CaseRecord) map[string]string {
	return map[string]string{
		FieldRegisterNumber: r.RegisterNumber,
		FieldDecisionDate:   r.DecisionDate,
		FieldPlaintiff:      r.Plaintiff,
		FieldDefendant:      r.Defendant,
		FieldServiceDate:    r.ServiceDate,
		FieldStatus:         r.Status,
	}
}

// CertificateFileName is the file name a register number is saved under.
// Path separators and other unsafe characters never reach the file system.
func CertificateFileName(registerNumber string) string {
	name := slug.Make(registerNumber)
	if name == "" {
		name = "surat-keterangan"
	}
	return name + ".pdf"
}

type CertificateService struct {
	provider     RecordProvider
	filler       FormFiller
	templatePath string
	outputDir    string
}

func NewCertificateService(provider RecordProvider, filler FormFiller, templatePath, outputDir string) *CertificateService {
	return &CertificateService{
		provider:     provider,
		filler:       filler,
		templatePath: templatePath,
		outputDir:    outputDir,
	}
}

// Generate fills the template from the first record matching
// registerNumber and saves it in the output directory, replacing any earlier
// certificate for the same number. Nothing is written when no record matches.
func (s *CertificateService) Generate(ctx context.Context, registerNumber string) (string, error) {
	key := strings.TrimSpace(registerNumber)
	if key == "" {
		return "", ErrNotFound
	}
	records, err := s.provider.Fetch(ctx, key)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", ErrNotFound
	}
	record := records[0]

	tpl, err := os.ReadFile(s.templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: read template: %v", ErrGeneration, err)
	}
	var out bytes.Buffer
	if err := s.filler.Fill(bytes.NewReader(tpl), CertificateFields(record), &out); err != nil {
		return "", fmt.Errorf("%w: fill form: %v", ErrGeneration, err)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	path := filepath.Join(s.outputDir, CertificateFileName(key))
	if err := writeFileAtomic(path, out.Bytes()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	logger.Infof("certificate for %s saved to %s", key, path)
	return path, nil
}

// writeFileAtomic writes through a temp file in the same directory so a
// concurrent reader never sees a partial certificate.
func writeFileAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Prune removes certificates last written before now minus maxAge and
// returns how many were deleted.
func (s *CertificateService) Prune(maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(s.outputDir)
	if os.IsNotExist(err) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	cutoff := now.Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".pdf" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.outputDir, e.Name())); err != nil {
				logger.Warning("prune certificate:", err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
