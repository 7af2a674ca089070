//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=school_admissions_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func uniq() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000)
}

// setupBranch creates a throwaway branch and returns a cleanup removing it
// together with everything that references it
func setupBranch(t *testing.T) (*model.Branch, func()) {
	t.Helper()
	branch := &model.Branch{Name: "Test Campus " + uniq(), IsEnabled: true}
	if err := repository.NewBranchRepo(testDB).Create(context.Background(), branch); err != nil {
		t.Fatalf("create branch: %v", err)
	}

	cleanup := func() {
		id := branch.BranchID
		testDB.Where("branch_id = ?", id).Delete(&model.Student{})
		testDB.Where("branch_id = ?", id).Delete(&model.Application{})
		testDB.Where("branch_id = ?", id).Delete(&model.Facility{})
		testDB.Where("branch_id = ?", id).Delete(&model.TimelineEvent{})
		testDB.Where("branch_id = ?", id).Delete(&model.AboutSection{})
		testDB.Unscoped().Where("branch_id = ?", id).Delete(&model.Branch{})
	}
	return branch, cleanup
}

func newApplication(branchID, email string) *model.Application {
	n := uniq()
	return &model.Application{
		ApplicationID:    "APP-T-" + n,
		StudentNumber:    "STU-T-" + n,
		BranchID:         branchID,
		Email:            email,
		FirstName:        "Asha",
		LastName:         "Rao",
		DateOfBirth:      "2015-04-02",
		Gender:           "Female",
		ApplyingForGrade: "Grade 5",
		Status:           model.StatusSubmitted,
		SubmittedAt:      time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
}

// ═══════════════════════════════════════════════════════════
// Applications
// ═══════════════════════════════════════════════════════════

func TestApplicationRepo_UniqueEmail(t *testing.T) {
	branch, cleanup := setupBranch(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewApplicationRepo(testDB)

	email := "asha" + uniq() + "@example.com"
	if err := repo.Create(ctx, newApplication(branch.BranchID, email)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, newApplication(branch.BranchID, email))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestApplicationRepo_StatusHistoryCascade(t *testing.T) {
	branch, cleanup := setupBranch(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewApplicationRepo(testDB)

	app := newApplication(branch.BranchID, "hist"+uniq()+"@example.com")
	if err := repo.Create(ctx, app); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	if err := repo.UpdateStatus(ctx, app.ApplicationID, model.StatusUnderReview, "checking documents", now); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	for _, to := range []model.ApplicationStatus{model.StatusSubmitted, model.StatusUnderReview} {
		change := &model.ApplicationStatusChange{ApplicationID: app.ApplicationID, ToStatus: to, ChangedAt: now}
		if err := repo.AppendStatusChange(ctx, change); err != nil {
			t.Fatalf("AppendStatusChange: %v", err)
		}
	}

	got, err := repo.GetByEmail(ctx, app.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.Status != model.StatusUnderReview || got.Notes != "checking documents" {
		t.Errorf("unexpected status/notes %s %q", got.Status, got.Notes)
	}

	changes, err := repo.ListStatusChanges(ctx, app.ApplicationID)
	if err != nil || len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d (%v)", len(changes), err)
	}

	if err := repo.Delete(ctx, app.ApplicationID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	changes, _ = repo.ListStatusChanges(ctx, app.ApplicationID)
	if len(changes) != 0 {
		t.Errorf("history must cascade, %d rows left", len(changes))
	}
	if _, err := repo.GetByID(ctx, app.ApplicationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestApplicationRepo_ListFilters(t *testing.T) {
	branch, cleanup := setupBranch(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewApplicationRepo(testDB)

	a := newApplication(branch.BranchID, "a"+uniq()+"@example.com")
	b := newApplication(branch.BranchID, "b"+uniq()+"@example.com")
	b.FirstName, b.Status = "Ben_100%", model.StatusApproved
	for _, app := range []*model.Application{a, b} {
		if err := repo.Create(ctx, app); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	_, total, err := repo.List(ctx, repository.ApplicationFilter{BranchID: branch.BranchID, Limit: 10})
	if err != nil || total != 2 {
		t.Fatalf("expected 2, got %d (%v)", total, err)
	}

	apps, total, _ := repo.List(ctx, repository.ApplicationFilter{BranchID: branch.BranchID, Status: model.StatusApproved, Limit: 10})
	if total != 1 || apps[0].ApplicationID != b.ApplicationID {
		t.Errorf("status filter returned %d rows", total)
	}

	// wildcard characters in the search term match literally
	_, total, _ = repo.List(ctx, repository.ApplicationFilter{BranchID: branch.BranchID, Search: "100%", Limit: 10})
	if total != 1 {
		t.Errorf("expected literal %% match, got %d", total)
	}
}

// ═══════════════════════════════════════════════════════════
// Students
// ═══════════════════════════════════════════════════════════

func TestStudentRepo_MaterializeOnce(t *testing.T) {
	branch, cleanup := setupBranch(t)
	defer cleanup()
	ctx := context.Background()
	apps := repository.NewApplicationRepo(testDB)
	students := repository.NewStudentRepo(testDB)

	app := newApplication(branch.BranchID, "approved"+uniq()+"@example.com")
	app.Status = model.StatusApproved
	if err := apps.Create(ctx, app); err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := apps.ListApprovedWithoutStudent(ctx)
	if err != nil {
		t.Fatalf("ListApprovedWithoutStudent: %v", err)
	}
	if !containsApplication(pending, app.ApplicationID) {
		t.Fatal("approved application without student not listed")
	}

	student := &model.Student{
		StudentID:      app.StudentNumber,
		ApplicationID:  app.ApplicationID,
		BranchID:       branch.BranchID,
		Email:          app.Email,
		FirstName:      app.FirstName,
		LastName:       app.LastName,
		CurrentGrade:   app.ApplyingForGrade,
		EnrollmentDate: time.Now().UTC(),
		Status:         model.StudentStatusActive,
	}
	created, err := students.CreateIfAbsent(ctx, student)
	if err != nil || !created {
		t.Fatalf("first CreateIfAbsent: created=%v err=%v", created, err)
	}
	again := *student
	created, err = students.CreateIfAbsent(ctx, &again)
	if err != nil || created {
		t.Errorf("second CreateIfAbsent must be a no-op: created=%v err=%v", created, err)
	}

	pending, _ = apps.ListApprovedWithoutStudent(ctx)
	if containsApplication(pending, app.ApplicationID) {
		t.Error("materialized application still listed")
	}
}

func containsApplication(apps []model.Application, id string) bool {
	for _, a := range apps {
		if a.ApplicationID == id {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════
// Branches, form fields, about
// ═══════════════════════════════════════════════════════════

func TestBranchRepo_SingleDefault(t *testing.T) {
	ctx := context.Background()
	branches := repository.NewBranchRepo(testDB)

	previous, err := branches.GetDefault(ctx)
	if err != nil {
		t.Fatalf("migrations must seed a default branch: %v", err)
	}

	branch, cleanup := setupBranch(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	err = repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Branch.ClearDefault(ctx); err != nil {
			return err
		}
		return tx.Branch.MarkDefault(ctx, branch.BranchID)
	})
	if err != nil {
		t.Fatalf("move default: %v", err)
	}
	defer repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Branch.ClearDefault(ctx); err != nil {
			return err
		}
		return tx.Branch.MarkDefault(ctx, previous.BranchID)
	})

	got, err := branches.GetDefault(ctx)
	if err != nil || got.BranchID != branch.BranchID {
		t.Errorf("expected %s as default, got %+v (%v)", branch.BranchID, got, err)
	}

	// the partial unique index allows only one default
	err = branches.MarkDefault(ctx, previous.BranchID)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected ErrDuplicatedKey for a second default, got %v", err)
	}
}

func TestFormFieldRepo_SeededDefinition(t *testing.T) {
	fields, err := repository.NewFormFieldRepo(testDB).List(context.Background(), true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		names[f.Name] = true
	}
	for _, want := range []string{"firstName", "lastName", "dateOfBirth", "gender", "applyingForGrade"} {
		if !names[want] {
			t.Errorf("seeded field %q missing", want)
		}
	}
}

func TestAboutRepo_ReplaceSwapsLists(t *testing.T) {
	branch, cleanup := setupBranch(t)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewAboutRepo(testDB)

	page := &repository.AboutPage{
		Section:    &model.AboutSection{BranchID: branch.BranchID, Title: "About us"},
		Facilities: []model.Facility{{BranchID: branch.BranchID, Name: "Library"}, {BranchID: branch.BranchID, Name: "Lab", DisplayOrder: 1}},
		Timeline:   []model.TimelineEvent{{BranchID: branch.BranchID, Year: "1998", Title: "Founded"}},
	}
	if err := repo.Replace(ctx, page); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	page.Section.Title = "Our school"
	page.Facilities = []model.Facility{{BranchID: branch.BranchID, Name: "Pool"}}
	page.Timeline = nil
	if err := repo.Replace(ctx, page); err != nil {
		t.Fatalf("second Replace: %v", err)
	}

	got, err := repo.Get(ctx, branch.BranchID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Section.Title != "Our school" || len(got.Facilities) != 1 || got.Facilities[0].Name != "Pool" || len(got.Timeline) != 0 {
		t.Errorf("lists not swapped: %+v", got)
	}
}
