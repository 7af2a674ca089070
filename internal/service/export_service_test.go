package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
)

func TestExportApplications(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	apps := newApplicationTestService(env, nil)
	ctx := context.Background()

	if _, err := apps.Submit(ctx, applicant, ashaPayload()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	env.apps.apps["APP2025OTHER1"] = &model.Application{
		ApplicationID: "APP2025OTHER1",
		BranchID:      branchEast,
		Email:         "east@example.com",
		Status:        model.StatusSubmitted,
	}

	svc := NewExportService(env.repo, testLogger()).(*exportService)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	buf, filename, err := svc.ExportApplications(ctx, &dto.ApplicationExportRequest{BranchID: branchMain})
	if err != nil {
		t.Fatalf("ExportApplications: %v", err)
	}
	if filename != "applications_main-campus_20260315.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}

	header := strings.Join(rows[0], "|")
	if !strings.Contains(header, "First Name") || !strings.Contains(header, "Extra Fields") {
		t.Errorf("unexpected header %s", header)
	}
	// columns without a configured field keep their key
	if !strings.Contains(header, "motherName") {
		t.Errorf("expected raw key header for unconfigured column: %s", header)
	}

	row := strings.Join(rows[1], "|")
	if !strings.Contains(row, "asha@example.com") || !strings.Contains(row, `"favoriteColor":"blue"`) {
		t.Errorf("unexpected row %s", row)
	}
}

func TestExportApplications_UnknownBranch(t *testing.T) {
	env := newTestEnv()
	svc := NewExportService(env.repo, testLogger())

	if _, _, err := svc.ExportApplications(context.Background(), &dto.ApplicationExportRequest{BranchID: branchUnknown}); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
}
