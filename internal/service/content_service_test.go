package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"school-admissions/backend/internal/dto"
)

func TestNews_PublishStampsOnce(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	svc := NewNewsService(env.repo, testLogger()).(*newsService)
	first := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	ctx := context.Background()

	draft, err := svc.Create(ctx, branchMain, &dto.NewsRequest{Title: "Open day"}, "user-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if draft.PublishedAt != "" {
		t.Error("draft must not have published_at")
	}

	public, _ := svc.List(ctx, branchMain, true)
	if len(public) != 0 {
		t.Errorf("draft leaked into public list: %+v", public)
	}

	published, err := svc.Update(ctx, branchMain, draft.ID, &dto.NewsRequest{Title: "Open day", IsPublished: true}, "user-admin")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if published.PublishedAt != first.Format(time.RFC3339) {
		t.Errorf("unexpected published_at %s", published.PublishedAt)
	}

	svc.now = func() time.Time { return first.Add(time.Hour) }
	again, _ := svc.Update(ctx, branchMain, draft.ID, &dto.NewsRequest{Title: "Open day!", IsPublished: true}, "user-admin")
	if again.PublishedAt != published.PublishedAt {
		t.Error("republishing must keep the original published_at")
	}

	public, _ = svc.List(ctx, branchMain, true)
	if len(public) != 1 {
		t.Errorf("expected 1 public post, got %d", len(public))
	}
}

func TestContent_BranchScoping(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedBranch(branchEast, "East Campus")
	svc := NewAcademicService(env.repo, testLogger())
	ctx := context.Background()

	prog, err := svc.Create(ctx, branchMain, &dto.AcademicProgramRequest{Title: "Primary"}, "user-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !prog.IsActive {
		t.Error("programs are active by default")
	}

	if _, err := svc.Get(ctx, branchEast, prog.ID); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("cross-branch get: expected ErrProgramNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, branchEast, prog.ID, "user-admin"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("cross-branch delete: expected ErrProgramNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, branchUnknown, &dto.AcademicProgramRequest{Title: "X"}, "user-admin"); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}

	list, _ := svc.List(ctx, branchEast, false)
	if len(list) != 0 {
		t.Errorf("east should have no programs, got %d", len(list))
	}
}

func TestContent_PublicReadNeedsEnabledBranch(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	env.seedBranch(branchEast, "East Campus").IsEnabled = false
	svc := NewCareerService(env.repo, testLogger())
	ctx := context.Background()

	if _, err := svc.Create(ctx, branchEast, &dto.CareerRequest{Title: "Teacher"}, "user-admin"); err != nil {
		t.Fatalf("admin create on disabled branch: %v", err)
	}
	if _, err := svc.List(ctx, branchEast, true); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
	if list, err := svc.List(ctx, branchEast, false); err != nil || len(list) != 1 {
		t.Errorf("admin list: %v, %d", err, len(list))
	}
}

func TestCareer_ClosingDate(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	svc := NewCareerService(env.repo, testLogger())
	ctx := context.Background()

	c, err := svc.Create(ctx, branchMain, &dto.CareerRequest{Title: "Teacher", ClosingDate: "2026-06-30"}, "user-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ClosingDate != "2026-06-30" {
		t.Errorf("unexpected closing date %s", c.ClosingDate)
	}

	if _, err := svc.Create(ctx, branchMain, &dto.CareerRequest{Title: "Teacher", ClosingDate: "30/06/2026"}, "user-admin"); !errors.Is(err, ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent, got %v", err)
	}
}

func TestGallery_CoverFallsBackToFirstImage(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	svc := NewGalleryService(env.repo, testLogger())

	g, err := svc.Create(context.Background(), branchMain, &dto.GalleryCategoryRequest{
		Name:      "Sports Day",
		ImageURLs: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.CoverURL != "https://cdn.example.com/a.jpg" || len(g.ImageURLs) != 2 {
		t.Errorf("unexpected album %+v", g)
	}
}

func TestAbout_ReplaceAndGet(t *testing.T) {
	env := newTestEnv()
	env.seedBranch(branchMain, "Main Campus")
	svc := NewAboutService(env.repo, testLogger())
	ctx := context.Background()

	if _, err := svc.Get(ctx, branchMain); !errors.Is(err, ErrAboutNotFound) {
		t.Errorf("expected ErrAboutNotFound, got %v", err)
	}

	_, err := svc.Replace(ctx, branchMain, &dto.ReplaceAboutRequest{
		Title:      "About us",
		Facilities: []dto.FacilityInput{{Name: "Library"}, {Name: "Lab"}},
		Timeline:   []dto.TimelineInput{{Year: "1998", Title: "Founded"}},
	}, "user-admin")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	page := env.about.pages[branchMain]
	if page.Facilities[1].DisplayOrder != 1 || page.Facilities[1].BranchID != branchMain {
		t.Errorf("unexpected facility %+v", page.Facilities[1])
	}

	resp, err := svc.Get(ctx, branchMain)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.Title != "About us" || len(resp.Facilities) != 2 || len(resp.Timeline) != 1 {
		t.Errorf("unexpected about page %+v", resp)
	}

	if _, err := svc.Replace(ctx, branchUnknown, &dto.ReplaceAboutRequest{Title: "x"}, "user-admin"); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
}
