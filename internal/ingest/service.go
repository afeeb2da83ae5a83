package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
)

// Service persists parsed ledger rows as named reports.
type Service struct {
	store service.LedgerStore
}

// NewService creates an ingestion service backed by the given ledger store.
func NewService(store service.LedgerStore) *Service {
	return &Service{store: store}
}

// SaveReport validates a bulk save request and delegates persistence to the
// ledger store. All five request fields are required.
func (s *Service) SaveReport(ctx context.Context, req service.BulkSaveRequest) (*model.Report, error) {
	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("%w: missing rows", common.ErrValidation)
	}
	if strings.TrimSpace(req.ReportName) == "" {
		return nil, fmt.Errorf("%w: missing report name", common.ErrValidation)
	}
	if strings.TrimSpace(req.FileName) == "" {
		return nil, fmt.Errorf("%w: missing file name", common.ErrValidation)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", common.ErrValidation)
	}
	if req.Year == 0 {
		return nil, fmt.Errorf("%w: missing year", common.ErrValidation)
	}

	report := &model.Report{
		Name:     req.ReportName,
		FileName: req.FileName,
		Month:    req.Month,
		Year:     req.Year,
	}

	if err := s.store.SaveReport(ctx, report, req.Rows); err != nil {
		return nil, fmt.Errorf("%w: saving report %q: %v", common.ErrStoreUnavailable, req.ReportName, err)
	}

	slog.Info("Saved report",
		"report_id", report.ID,
		"name", report.Name,
		"rows", len(req.Rows))

	return report, nil
}
