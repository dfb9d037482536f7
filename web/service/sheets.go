package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/model"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig locates the register spreadsheet.
type SheetsConfig struct {
	SpreadsheetID string
	Range         string
	// CredentialsFile is a service account key. Ignored when client options
	// are passed to NewSheetsRecordProvider.
	CredentialsFile string
	Timeout         time.Duration
}

// SheetsRecordProvider reads the register from a Google spreadsheet on every
// call. The API client is built on first use.
type SheetsRecordProvider struct {
	cfg  SheetsConfig
	opts []option.ClientOption

	mu  sync.Mutex
	srv *sheets.Service
}

func NewSheetsRecordProvider(cfg SheetsConfig, opts ...option.ClientOption) *SheetsRecordProvider {
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope),
		}
	}
	return &SheetsRecordProvider{cfg: cfg, opts: opts}
}

// service returns the cached client. Failed attempts are not cached so a
// credentials file fixed at runtime is picked up on the next request.
func (p *SheetsRecordProvider) service() (*sheets.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.srv != nil {
		return p.srv, nil
	}
	srv, err := sheets.NewService(context.Background(), p.opts...)
	if err != nil {
		return nil, err
	}
	p.srv = srv
	return srv, nil
}

func (p *SheetsRecordProvider) Fetch(ctx context.Context, filterKey string) ([]model.CaseRecord, error) {
	srv, err := p.service()
	if err != nil {
		logger.Error("sheets client init failed:", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	resp, err := srv.Spreadsheets.Values.Get(p.cfg.SpreadsheetID, p.cfg.Range).Context(ctx).Do()
	if err != nil {
		logger.Error("Error fetching data:", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	records := make([]model.CaseRecord, 0, len(resp.Values))
	for _, row := range resp.Values {
		records = append(records, model.RecordFromRow(row))
	}
	logger.Debugf("fetched %d rows from %s", len(records), p.cfg.Range)
	return filterRecords(records, filterKey), nil
}
