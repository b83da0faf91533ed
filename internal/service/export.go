package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/export"
	"github.com/target/marketplace-console/internal/marketplace"
)

const (
	defaultExportPageSize = 200
	maxExportRows         = 50000
)

// ExportServiceOptions groups dependencies for ExportService.
type ExportServiceOptions struct {
	Backend  core.ExportBackend
	Presets  *export.Presets
	PageSize int
}

// ExportService writes admin datasets as CSV.
type ExportService struct {
	backend  core.ExportBackend
	presets  *export.Presets
	pageSize int
	logger   *slog.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(opts ExportServiceOptions) *ExportService {
	if opts.Backend == nil {
		panic("export backend is required")
	}
	if opts.Presets == nil {
		panic("export presets are required")
	}
	size := opts.PageSize
	if size <= 0 {
		size = defaultExportPageSize
	}
	return &ExportService{
		backend:  opts.Backend,
		presets:  opts.Presets,
		pageSize: size,
		logger:   slog.Default().With("component", "export_service"),
	}
}

// ExportRequest selects what to export. Search narrows the rows the same way the table filter does.
type ExportRequest struct {
	Dataset export.Dataset
	Preset  string
	Search  string
}

// Presets lists preset names for dataset.
func (s *ExportService) Presets(dataset export.Dataset) []string { return s.presets.Names(dataset) }

// Export fetches every page of the dataset and writes it to w. It returns the number of rows written.
// Nothing is written when the first fetch fails.
func (s *ExportService) Export(
	ctx context.Context,
	sess *domainauth.Session,
	req ExportRequest,
	w io.Writer,
) (int, error) {
	if !req.Dataset.Valid() {
		return 0, apperrors.ValidationField("dataset", fmt.Sprintf("Unknown dataset %q.", req.Dataset))
	}
	preset, err := s.presets.Resolve(req.Dataset, req.Preset)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Unknown export preset.")
	}
	ctx = withSession(ctx, sess)
	list := model.ListOptions{Search: req.Search}

	var n int
	switch req.Dataset {
	case export.DatasetUsers:
		n, err = exportAll(ctx, s, w, preset,
			func(ctx context.Context, page model.ListOptions) (*model.Page[model.User], error) {
				return s.backend.ListUsers(ctx, model.UserListOptions{ListOptions: page})
			}, list)
	case export.DatasetAdmins:
		n, err = exportAll(ctx, s, w, preset, s.backend.ListAdmins, list)
	case export.DatasetSubscriptions:
		n, err = exportAll(ctx, s, w, preset,
			func(ctx context.Context, page model.ListOptions) (*model.Page[model.Subscription], error) {
				return s.backend.ListSubscriptions(ctx, model.SubscriptionListOptions{ListOptions: page})
			}, list)
	case export.DatasetTransactions:
		n, err = exportAll(ctx, s, w, preset,
			func(ctx context.Context, page model.ListOptions) (*model.Page[model.Transaction], error) {
				return s.backend.ListTransactions(ctx, model.TransactionListOptions{ListOptions: page})
			}, list)
	}
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "export written", "dataset", req.Dataset, "preset", preset.Name, "rows", n)
	return n, nil
}

// exportAll pages through fetch, then writes the CSV in one go so a mid-way failure leaves w untouched.
func exportAll[T any](
	ctx context.Context,
	s *ExportService,
	w io.Writer,
	preset export.Preset,
	fetch func(ctx context.Context, opts model.ListOptions) (*model.Page[T], error),
	opts model.ListOptions,
) (int, error) {
	opts.Limit = s.pageSize
	var rows []T
	for {
		page, err := fetch(ctx, opts)
		if err != nil {
			return 0, marketplace.ToAppError(err)
		}
		rows = append(rows, page.Items...)
		if len(rows) > maxExportRows {
			return 0, apperrors.Validation(fmt.Sprintf("Exports are limited to %d rows. Narrow the search.", maxExportRows))
		}
		if !page.HasNext() || len(page.Items) == 0 {
			break
		}
		opts.Offset += len(page.Items)
	}
	if err := export.WriteCSV(w, preset.Columns, rows); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return len(rows), nil
}
