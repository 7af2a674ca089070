package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/form"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/errors"
)

var ErrExportFailed = errors.New(errors.KindUnexpected, 14009, "failed to generate the export file")

const exportSheet = "Applications"

// ExportService spreadsheet exports for admins
type ExportService interface {
	// ExportApplications writes a branch's applications to .xlsx using the
	// list filters; returns the workbook and a suggested filename
	ExportApplications(ctx context.Context, req *dto.ApplicationExportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, now: time.Now, logger: logger}
}

// Layout: one header row, then one row per application, newest first.
// Fixed columns come first, then every column-backed form key labelled
// from the form definition when configured, then the extra fields as JSON.
func (s *exportService) ExportApplications(ctx context.Context, req *dto.ApplicationExportRequest) (*bytes.Buffer, string, error) {
	branch, err := s.repo.Branch.GetByID(ctx, req.BranchID)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrBranchNotFound
		}
		s.logger.Error("get branch failed", zap.String("branch_id", req.BranchID), zap.Error(err))
		return nil, "", err
	}

	apps, _, err := s.repo.Application.List(ctx, repository.ApplicationFilter{
		BranchID: req.BranchID,
		Status:   model.ApplicationStatus(req.Status),
		Search:   req.Search,
	})
	if err != nil {
		s.logger.Error("list applications for export failed", zap.Error(err))
		return nil, "", err
	}

	fields, err := s.repo.FormField.List(ctx, false)
	if err != nil {
		s.logger.Error("list form fields failed", zap.Error(err))
		return nil, "", err
	}
	labels := make(map[string]string, len(fields))
	for _, f := range fields {
		labels[f.Name] = f.Label
	}

	columns := form.Columns()
	headers := []string{"Application ID", "Student ID", "Email", "Status", "Submitted At", "Updated At"}
	for _, name := range columns {
		if label, ok := labels[name]; ok && label != "" {
			headers = append(headers, label)
		} else {
			headers = append(headers, name)
		}
	}
	headers = append(headers, "Notes", "Extra Fields")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		s.logger.Error("rename sheet failed", zap.Error(err))
		return nil, "", ErrExportFailed
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		f.SetCellValue(exportSheet, cell(colName(i), 1), h)
	}
	last := colName(len(headers) - 1)
	f.SetCellStyle(exportSheet, "A1", cell(last, 1), headerStyle)
	f.SetColWidth(exportSheet, "A", last, 18)
	f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for r := range apps {
		a := &apps[r]
		row := []interface{}{
			a.ApplicationID,
			a.StudentNumber,
			a.Email,
			string(a.Status),
			formatTime(a.SubmittedAt),
			formatTime(a.UpdatedAt),
		}
		for _, name := range columns {
			v, _ := form.Value(a, name)
			row = append(row, v)
		}
		extra := ""
		if len(a.ExtraFields) > 0 {
			raw, err := json.Marshal(a.ExtraFields)
			if err == nil {
				extra = string(raw)
			}
		}
		row = append(row, a.Notes, extra)

		if err := f.SetSheetRow(exportSheet, cell("A", r+2), &row); err != nil {
			s.logger.Error("write export row failed", zap.String("application_id", a.ApplicationID), zap.Error(err))
			return nil, "", ErrExportFailed
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportFailed
	}

	filename := fmt.Sprintf("applications_%s_%s.xlsx", slug(branch.Name), s.now().Format("20060102"))
	s.logger.Info("applications exported",
		zap.String("branch_id", req.BranchID),
		zap.Int("rows", len(apps)),
	)
	return buf, filename, nil
}

// colName zero-based column index to letters
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// slug keeps ASCII letters and digits, everything else becomes '-'
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "branch"
	}
	return out
}
