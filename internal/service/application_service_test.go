package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
)

var (
	applicant = Principal{UserID: "user-asha", Email: "asha@example.com", Role: model.RoleStudent}
	admin     = Principal{UserID: "user-admin", Email: "admin@example.com", Role: model.RoleAdmin}
)

func newApplicationTestService(env *testEnv, notifier StatusNotifier) *applicationService {
	svc := NewApplicationService(testConfig(), env.repo, notifier, testLogger()).(*applicationService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc
}

func ashaPayload() map[string]interface{} {
	return map[string]interface{}{
		"firstName":        "Asha",
		"lastName":         "Rao",
		"dateOfBirth":      "2015-04-02",
		"gender":           "Female",
		"applyingForGrade": "Grade 5",
		"phone":            "+91 98765 43210",
		"favoriteColor":    "blue",
	}
}

func TestSubmit_StoresColumnsAndExtraFields(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, applicant, ashaPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !regexp.MustCompile(`^APP2026[0-9A-Z]{6}$`).MatchString(resp.ApplicationID) {
		t.Errorf("unexpected application id %s", resp.ApplicationID)
	}
	if !regexp.MustCompile(`^STU2026[0-9A-Z]{6}$`).MatchString(resp.StudentID) {
		t.Errorf("unexpected student id %s", resp.StudentID)
	}

	app := env.apps.apps[resp.ApplicationID]
	if app.FirstName != "Asha" || app.Phone != "+91 98765 43210" {
		t.Errorf("columns not mapped: %+v", app)
	}
	if app.BranchID != branchMain {
		t.Errorf("expected default branch, got %s", app.BranchID)
	}
	if app.Status != model.StatusSubmitted {
		t.Errorf("expected submitted, got %s", app.Status)
	}
	if app.ExtraFields["favoriteColor"] != "blue" {
		t.Errorf("expected favoriteColor in extra fields, got %v", app.ExtraFields)
	}
	if app.AcademicYear != "2026-2027" {
		t.Errorf("unexpected academic year %s", app.AcademicYear)
	}

	history := env.apps.changes[resp.ApplicationID]
	if len(history) != 1 || history[0].ToStatus != model.StatusSubmitted {
		t.Errorf("expected one submitted history entry, got %+v", history)
	}

	status, err := svc.GetStatus(ctx, applicant, "")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Personal["firstName"] != "Asha" {
		t.Errorf("snapshot missing firstName: %v", status.Personal)
	}
	if _, ok := status.Parent["fatherName"]; !ok {
		t.Error("snapshot should include empty columns")
	}
	if status.ExtraFields["favoriteColor"] != "blue" {
		t.Errorf("snapshot missing extra field: %v", status.ExtraFields)
	}
}

func TestSubmit_DuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, applicant, ashaPayload()); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// an invalid second payload still reports the conflict
	_, err := svc.Submit(ctx, applicant, map[string]interface{}{"firstName": "Asha"})
	if !errors.Is(err, ErrApplicationExists) {
		t.Errorf("expected ErrApplicationExists, got %v", err)
	}
	if len(env.apps.apps) != 1 {
		t.Errorf("expected one application, got %d", len(env.apps.apps))
	}
}

func TestSubmit_RegeneratesCollidingApplicationID(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	env.apps.apps["APP2026TAKEN1"] = &model.Application{ApplicationID: "APP2026TAKEN1", Email: "ravi@example.com"}

	svc := newApplicationTestService(env, nil)
	ids := []string{"APP2026TAKEN1", "APP2026FRESH1"}
	svc.newID = func(time.Time) string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	resp, err := svc.Submit(context.Background(), applicant, ashaPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.ApplicationID != "APP2026FRESH1" {
		t.Errorf("expected regenerated id, got %s", resp.ApplicationID)
	}
	if env.apps.apps["APP2026TAKEN1"].Email != "ravi@example.com" {
		t.Error("existing application must not be replaced")
	}
}

func TestSubmit_PersistentIDCollisionIsNotAConflict(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	env.apps.apps["APP2026TAKEN1"] = &model.Application{ApplicationID: "APP2026TAKEN1", Email: "ravi@example.com"}

	svc := newApplicationTestService(env, nil)
	calls := 0
	svc.newID = func(time.Time) string {
		calls++
		return "APP2026TAKEN1"
	}

	_, err := svc.Submit(context.Background(), applicant, ashaPayload())
	if err == nil || errors.Is(err, ErrApplicationExists) {
		t.Fatalf("expected an unexpected error, got %v", err)
	}
	if calls != idAttempts {
		t.Errorf("expected %d attempts, got %d", idAttempts, calls)
	}
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		caller Principal
		mutate func(p map[string]interface{})
		want   error
	}{
		{"missing required", applicant, func(p map[string]interface{}) { delete(p, "gender") }, ErrMissingRequired},
		{"blank required", applicant, func(p map[string]interface{}) { p["lastName"] = "   " }, ErrMissingRequired},
		{"unknown key", applicant, func(p map[string]interface{}) { p["shoeSize"] = "3" }, ErrUnknownFields},
		{"bad date", applicant, func(p map[string]interface{}) { p["dateOfBirth"] = "02/04/2015" }, ErrInvalidFieldValues},
		{"bad option", applicant, func(p map[string]interface{}) { p["gender"] = "Unknown" }, ErrInvalidFieldValues},
		{"object value", applicant, func(p map[string]interface{}) { p["firstName"] = map[string]interface{}{"x": 1} }, ErrInvalidFieldValues},
		{"someone else's email", applicant, func(p map[string]interface{}) { p["email"] = "other@example.com" }, ErrApplicationForbidden},
		{"unknown branch", applicant, func(p map[string]interface{}) { p["branchId"] = branchUnknown }, ErrBranchNotFound},
		{"malformed branch id", applicant, func(p map[string]interface{}) { p["branchId"] = "main" }, ErrBranchNotFound},
		{"numeric branch id", applicant, func(p map[string]interface{}) { p["branchId"] = 7 }, ErrBranchNotFound},
		{"numeric email", admin, func(p map[string]interface{}) { p["email"] = 42 }, ErrInvalidEmail},
		{"admin without email", Principal{UserID: "u", Role: model.RoleAdmin}, func(p map[string]interface{}) {}, ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.seedBranch(branchMain, "Main Campus")
			env.seedFields()
			svc := newApplicationTestService(env, nil)

			payload := ashaPayload()
			tt.mutate(payload)
			_, err := svc.Submit(context.Background(), tt.caller, payload)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(env.apps.apps) != 0 {
				t.Error("nothing should be stored on rejection")
			}
		})
	}
}

func TestSubmit_MissingRequiredListsFields(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	svc := newApplicationTestService(env, nil)

	_, err := svc.Submit(context.Background(), applicant, map[string]interface{}{"firstName": "Asha"})
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	for _, name := range []string{"lastName", "dateOfBirth", "gender", "applyingForGrade"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected %s in %q", name, err.Error())
		}
	}
}

func TestSubmit_BranchAndFormPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled branch", func(t *testing.T) {
		env := newTestEnv()
		env.seedBranch(branchMain, "Main Campus")
		env.seedBranch(branchEast, "East Campus").IsEnabled = false
		env.seedFields()
		payload := ashaPayload()
		payload["branchId"] = branchEast

		_, err := newApplicationTestService(env, nil).Submit(ctx, applicant, payload)
		if !errors.Is(err, ErrBranchDisabled) {
			t.Errorf("expected ErrBranchDisabled, got %v", err)
		}
	})

	t.Run("no default branch", func(t *testing.T) {
		env := newTestEnv()
		env.seedFields()
		_, err := newApplicationTestService(env, nil).Submit(ctx, applicant, ashaPayload())
		if !errors.Is(err, ErrNoDefaultBranch) {
			t.Errorf("expected ErrNoDefaultBranch, got %v", err)
		}
	})

	t.Run("form not configured", func(t *testing.T) {
		env := newTestEnv()
		env.seedBranch(branchMain, "Main Campus")
		_, err := newApplicationTestService(env, nil).Submit(ctx, applicant, ashaPayload())
		if !errors.Is(err, ErrFormNotConfigured) {
			t.Errorf("expected ErrFormNotConfigured, got %v", err)
		}
	})

	t.Run("admin submits on behalf", func(t *testing.T) {
		env := newTestEnv()
		env.seedBranch(branchMain, "Main Campus")
		env.seedFields()
		payload := ashaPayload()
		payload["email"] = " Parent@Example.com "

		if _, err := newApplicationTestService(env, nil).Submit(ctx, admin, payload); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if _, err := env.apps.GetByEmail(ctx, "parent@example.com"); err != nil {
			t.Errorf("expected application stored under normalized email: %v", err)
		}
	})
}

func TestUpdateStatus_ApprovalMaterializesStudentOnce(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	notifier := &mockNotifier{}
	svc := newApplicationTestService(env, notifier)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, applicant, ashaPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	req := &dto.UpdateApplicationStatusRequest{Email: "asha@example.com", Status: "approved"}
	resp, err := svc.UpdateStatus(ctx, admin, req)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !resp.StudentCreated || resp.StudentID != submitted.StudentID {
		t.Errorf("expected student %s created, got %+v", submitted.StudentID, resp)
	}

	student := env.students.students[submitted.StudentID]
	if student == nil {
		t.Fatal("student not stored")
	}
	if student.CurrentGrade != "Grade 5" || student.Status != model.StudentStatusActive {
		t.Errorf("unexpected student %+v", student)
	}
	if !student.EnrollmentDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected enrollment date %v", student.EnrollmentDate)
	}

	app := env.apps.apps[submitted.ApplicationID]
	if app.Notes != "Status changed to approved" {
		t.Errorf("expected default notes, got %q", app.Notes)
	}

	// second approval is a no-op for students
	resp, err = svc.UpdateStatus(ctx, admin, req)
	if err != nil {
		t.Fatalf("second UpdateStatus: %v", err)
	}
	if resp.StudentCreated {
		t.Error("second approval must not create another student")
	}
	if len(env.students.students) != 1 {
		t.Errorf("expected 1 student, got %d", len(env.students.students))
	}

	history := env.apps.changes[submitted.ApplicationID]
	if len(history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(history))
	}
	if history[1].FromStatus != model.StatusSubmitted || history[1].ToStatus != model.StatusApproved {
		t.Errorf("unexpected transition %+v", history[1])
	}
	if len(notifier.sent) != 2 || notifier.sent[0].status != "approved" {
		t.Errorf("expected two approval notifications, got %+v", notifier.sent)
	}
}

func TestUpdateStatus_NonApprovalCreatesNoStudent(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, applicant, ashaPayload()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	for _, status := range []string{"pending", "under_review", "rejected"} {
		resp, err := svc.UpdateStatus(ctx, admin, &dto.UpdateApplicationStatusRequest{
			Email:   "asha@example.com",
			Status:  status,
			Comment: "checked documents",
		})
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
		if resp.StudentCreated {
			t.Errorf("status %s must not create a student", status)
		}
	}
	if len(env.students.students) != 0 {
		t.Errorf("expected no students, got %d", len(env.students.students))
	}

	status, err := svc.GetStatus(ctx, applicant, "")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Status != "rejected" || status.Notes != "checked documents" {
		t.Errorf("unexpected status %s / %q", status.Status, status.Notes)
	}
	if len(status.StatusHistory) != 4 {
		t.Errorf("expected 4 history entries, got %d", len(status.StatusHistory))
	}
}

func TestUpdateStatus_Guards(t *testing.T) {
	env := newTestEnv()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, applicant, &dto.UpdateApplicationStatusRequest{Email: "asha@example.com", Status: "approved"})
	if !errors.Is(err, ErrApplicationForbidden) {
		t.Errorf("expected ErrApplicationForbidden, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, admin, &dto.UpdateApplicationStatusRequest{Email: "asha@example.com", Status: "enrolled"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, admin, &dto.UpdateApplicationStatusRequest{Email: "nobody@example.com", Status: "approved"})
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestUpdateStatus_NotificationFailureIgnored(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	svc := newApplicationTestService(env, &mockNotifier{err: errors.New("smtp down")})
	ctx := context.Background()

	if _, err := svc.Submit(ctx, applicant, ashaPayload()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, admin, &dto.UpdateApplicationStatusRequest{Email: "asha@example.com", Status: "pending"}); err != nil {
		t.Errorf("notification failure must not fail the update: %v", err)
	}
}

func TestGetStatus_OwnershipAndNotFound(t *testing.T) {
	env := newTestEnv()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	if _, err := svc.GetStatus(ctx, applicant, "other@example.com"); !errors.Is(err, ErrApplicationForbidden) {
		t.Errorf("expected ErrApplicationForbidden, got %v", err)
	}
	if _, err := svc.GetStatus(ctx, applicant, ""); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestDeleteFormField_LeavesApplicationsUntouched(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	apps := newApplicationTestService(env, nil)
	fields := NewFormFieldService(env.repo, nil, testLogger())
	ctx := context.Background()

	resp, err := apps.Submit(ctx, applicant, ashaPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	color, _ := env.fields.GetByName(ctx, "favoriteColor")
	if err := fields.Delete(ctx, color.FieldID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	status, err := apps.GetStatus(ctx, applicant, "")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.ApplicationID != resp.ApplicationID || status.ExtraFields["favoriteColor"] != "blue" {
		t.Errorf("stored application changed after field delete: %+v", status.ExtraFields)
	}

	// the key is now unknown for new submissions
	payload := ashaPayload()
	_, err = apps.Submit(ctx, Principal{UserID: "u2", Email: "ravi@example.com"}, payload)
	if !errors.Is(err, ErrUnknownFields) {
		t.Errorf("expected ErrUnknownFields after delete, got %v", err)
	}
}

func TestList_FiltersByBranchAndSearch(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedBranch(branchEast, "East Campus")
	env.seedFields()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	submit := func(email, first, branch string) {
		p := ashaPayload()
		p["firstName"] = first
		p["branchId"] = branch
		if _, err := svc.Submit(ctx, Principal{UserID: email, Email: email}, p); err != nil {
			t.Fatalf("Submit %s: %v", email, err)
		}
	}
	submit("asha@example.com", "Asha", branchMain)
	submit("ravi@example.com", "Ravi", branchMain)
	submit("meera@example.com", "Meera", branchEast)

	req := &dto.ApplicationListRequest{BranchID: branchMain}
	list, total, err := svc.List(ctx, req)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("expected 2 main-campus applications, got %d", total)
	}

	req.Search = "RAVI"
	list, total, _ = svc.List(ctx, req)
	if total != 1 || list[0].Email != "ravi@example.com" {
		t.Errorf("search mismatch: %+v", list)
	}

	req.Search = ""
	req.Status = "approved"
	_, total, _ = svc.List(ctx, req)
	if total != 0 {
		t.Errorf("expected no approved applications, got %d", total)
	}
}

func TestMigrateApproved_FillsMissingStudents(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		id := "APP2026AAAAA" + string(rune('0'+i))
		env.apps.apps[id] = &model.Application{
			ApplicationID:    id,
			StudentNumber:    "STU2026BBBBB" + string(rune('0'+i)),
			BranchID:         branchMain,
			Email:            email,
			FirstName:        "Kid",
			LastName:         string(rune('A' + i)),
			ApplyingForGrade: "Grade 1",
			Status:           model.StatusApproved,
		}
	}
	env.apps.apps["APP2026PENDNG"] = &model.Application{ApplicationID: "APP2026PENDNG", Email: "p@example.com", Status: model.StatusPending}
	env.students.failFor["c@example.com"] = true

	report, err := svc.MigrateApproved(ctx)
	if err != nil {
		t.Fatalf("MigrateApproved: %v", err)
	}
	if report.Scanned != 3 || report.Created != 2 || report.Failed != 1 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(report.FailedIDs) != 1 || report.FailedIDs[0] != "APP2026AAAAA2" {
		t.Errorf("unexpected failed ids %v", report.FailedIDs)
	}

	// rerun picks up only the failed one
	delete(env.students.failFor, "c@example.com")
	report, err = svc.MigrateApproved(ctx)
	if err != nil {
		t.Fatalf("second MigrateApproved: %v", err)
	}
	if report.Scanned != 1 || report.Created != 1 {
		t.Errorf("unexpected second report %+v", report)
	}
}

func TestDeleteApplication(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedFields()
	svc := newApplicationTestService(env, nil)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, applicant, ashaPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := svc.Delete(ctx, resp.ApplicationID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(env.apps.changes[resp.ApplicationID]) != 0 {
		t.Error("history should be removed with the application")
	}
	if err := svc.Delete(ctx, resp.ApplicationID); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}
