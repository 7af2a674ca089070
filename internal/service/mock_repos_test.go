package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-admissions/backend/config"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/jwt"
)

// branch ids used across the service tests
const (
	branchMain    = "0b7c4f52-3d1e-4a8b-9c2f-5e6a7b8c9d01"
	branchEast    = "0b7c4f52-3d1e-4a8b-9c2f-5e6a7b8c9d02"
	branchUnknown = "0b7c4f52-3d1e-4a8b-9c2f-5e6a7b8c9dff"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock BranchRepository ──

type mockBranchRepo struct {
	branches map[string]*model.Branch
	contacts map[string]*model.BranchContact
}

func newMockBranchRepo() *mockBranchRepo {
	return &mockBranchRepo{
		branches: make(map[string]*model.Branch),
		contacts: make(map[string]*model.BranchContact),
	}
}

func (m *mockBranchRepo) Create(_ context.Context, branch *model.Branch) error {
	if branch.BranchID == "" {
		branch.BranchID = uuid.NewString()
	}
	m.branches[branch.BranchID] = branch
	return nil
}

func (m *mockBranchRepo) GetByID(_ context.Context, id string) (*model.Branch, error) {
	// postgres refuses non-uuid text for a uuid column with 22P02
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("ERROR: invalid input syntax for type uuid: %q (SQLSTATE 22P02)", id)
	}
	if b, ok := m.branches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchRepo) GetDefault(_ context.Context) (*model.Branch, error) {
	for _, b := range m.branches {
		if b.IsDefault {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchRepo) List(_ context.Context, enabledOnly bool) ([]model.Branch, error) {
	var result []model.Branch
	for _, b := range m.branches {
		if enabledOnly && !b.IsEnabled {
			continue
		}
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockBranchRepo) Update(_ context.Context, branch *model.Branch) error {
	m.branches[branch.BranchID] = branch
	return nil
}

func (m *mockBranchRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.branches[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.branches, id)
	return nil
}

func (m *mockBranchRepo) ClearDefault(_ context.Context) error {
	for _, b := range m.branches {
		b.IsDefault = false
	}
	return nil
}

func (m *mockBranchRepo) MarkDefault(_ context.Context, id string) error {
	b, ok := m.branches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.IsDefault = true
	return nil
}

func (m *mockBranchRepo) GetContact(_ context.Context, branchID string) (*model.BranchContact, error) {
	if c, ok := m.contacts[branchID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchRepo) UpsertContact(_ context.Context, contact *model.BranchContact) error {
	m.contacts[contact.BranchID] = contact
	return nil
}

// ── Mock FormFieldRepository ──

type mockFormFieldRepo struct {
	fields map[string]*model.FormField
	seq    int
}

func newMockFormFieldRepo() *mockFormFieldRepo {
	return &mockFormFieldRepo{fields: make(map[string]*model.FormField)}
}

func (m *mockFormFieldRepo) Create(_ context.Context, field *model.FormField) error {
	for _, f := range m.fields {
		if f.Name == field.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if field.FieldID == "" {
		m.seq++
		field.FieldID = fmt.Sprintf("field-%d", m.seq)
	}
	m.fields[field.FieldID] = field
	return nil
}

func (m *mockFormFieldRepo) GetByID(_ context.Context, id string) (*model.FormField, error) {
	if f, ok := m.fields[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFormFieldRepo) GetByName(_ context.Context, name string) (*model.FormField, error) {
	for _, f := range m.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFormFieldRepo) List(_ context.Context, visibleOnly bool) ([]model.FormField, error) {
	var result []model.FormField
	for _, f := range m.fields {
		if visibleOnly && !f.IsVisible {
			continue
		}
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Section != result[j].Section {
			return result[i].Section < result[j].Section
		}
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].FieldID < result[j].FieldID
	})
	return result, nil
}

func (m *mockFormFieldRepo) Update(_ context.Context, field *model.FormField) error {
	m.fields[field.FieldID] = field
	return nil
}

func (m *mockFormFieldRepo) UpdateOrder(_ context.Context, id string, displayOrder int) error {
	f, ok := m.fields[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.DisplayOrder = displayOrder
	return nil
}

func (m *mockFormFieldRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.fields[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.fields, id)
	return nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps     map[string]*model.Application // key: application_id
	changes  map[string][]model.ApplicationStatusChange
	students *mockStudentRepo
}

func newMockApplicationRepo(students *mockStudentRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:     make(map[string]*model.Application),
		changes:  make(map[string][]model.ApplicationStatusChange),
		students: students,
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if _, ok := m.apps[app.ApplicationID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, a := range m.apps {
		if a.Email == app.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.apps[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) GetByEmail(_ context.Context, email string) (*model.Application, error) {
	for _, a := range m.apps {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) List(_ context.Context, filter repository.ApplicationFilter) ([]model.Application, int64, error) {
	var all []model.Application
	search := strings.ToLower(filter.Search)
	for _, a := range m.apps {
		if filter.BranchID != "" && a.BranchID != filter.BranchID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(a.FirstName+" "+a.LastName+" "+a.Email+" "+a.ApplicationID), search) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SubmittedAt.After(all[j].SubmittedAt) })

	total := int64(len(all))
	if filter.Limit <= 0 {
		return all, total, nil
	}
	if filter.Offset >= len(all) {
		return []model.Application{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id string, status model.ApplicationStatus, notes string, at time.Time) error {
	a, ok := m.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	a.Notes = notes
	a.UpdatedAt = at
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.apps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.apps, id)
	delete(m.changes, id)
	return nil
}

func (m *mockApplicationRepo) AppendStatusChange(_ context.Context, change *model.ApplicationStatusChange) error {
	m.changes[change.ApplicationID] = append(m.changes[change.ApplicationID], *change)
	return nil
}

func (m *mockApplicationRepo) ListStatusChanges(_ context.Context, applicationID string) ([]model.ApplicationStatusChange, error) {
	return m.changes[applicationID], nil
}

func (m *mockApplicationRepo) ListApprovedWithoutStudent(_ context.Context) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.apps {
		if a.Status != model.StatusApproved {
			continue
		}
		if _, ok := m.students.byEmail(a.Email); ok {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ApplicationID < result[j].ApplicationID })
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student // key: student_id
	failFor  map[string]bool           // emails whose insert fails
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		students: make(map[string]*model.Student),
		failFor:  make(map[string]bool),
	}
}

func (m *mockStudentRepo) byEmail(email string) (*model.Student, bool) {
	for _, s := range m.students {
		if s.Email == email {
			return s, true
		}
	}
	return nil, false
}

func (m *mockStudentRepo) CreateIfAbsent(_ context.Context, student *model.Student) (bool, error) {
	if m.failFor[student.Email] {
		return false, fmt.Errorf("insert student %s: connection reset", student.Email)
	}
	if _, ok := m.byEmail(student.Email); ok {
		return false, nil
	}
	m.students[student.StudentID] = student
	return true, nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	if s, ok := m.byEmail(email); ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, filter repository.StudentFilter) ([]model.Student, int64, error) {
	var all []model.Student
	search := strings.ToLower(filter.Search)
	for _, s := range m.students {
		if filter.BranchID != "" && s.BranchID != filter.BranchID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.FirstName+" "+s.LastName+" "+s.Email+" "+s.StudentID), search) {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StudentID < all[j].StudentID })
	return all, int64(len(all)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

// ── Mock ContentRepository ──

type mockContentRepo[T any] struct {
	items  map[string]*T
	id     func(*T) *string
	branch func(*T) string
	public func(*T) bool
	seq    int
}

func newMockContentRepo[T any](id func(*T) *string, branch func(*T) string, public func(*T) bool) *mockContentRepo[T] {
	return &mockContentRepo[T]{items: make(map[string]*T), id: id, branch: branch, public: public}
}

func (m *mockContentRepo[T]) Create(_ context.Context, item *T) error {
	if *m.id(item) == "" {
		m.seq++
		*m.id(item) = fmt.Sprintf("item-%d", m.seq)
	}
	m.items[*m.id(item)] = item
	return nil
}

func (m *mockContentRepo[T]) GetByID(_ context.Context, branchID, id string) (*T, error) {
	item, ok := m.items[id]
	if !ok || m.branch(item) != branchID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *mockContentRepo[T]) List(_ context.Context, branchID string, publicOnly bool) ([]T, error) {
	var ids []string
	for id, item := range m.items {
		if m.branch(item) != branchID || (publicOnly && !m.public(item)) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockContentRepo[T]) Update(_ context.Context, item *T) error {
	m.items[*m.id(item)] = item
	return nil
}

func (m *mockContentRepo[T]) Delete(_ context.Context, branchID, id, _ string) error {
	item, ok := m.items[id]
	if !ok || m.branch(item) != branchID {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock AboutRepository ──

type mockAboutRepo struct {
	pages map[string]*repository.AboutPage
}

func newMockAboutRepo() *mockAboutRepo {
	return &mockAboutRepo{pages: make(map[string]*repository.AboutPage)}
}

func (m *mockAboutRepo) Get(_ context.Context, branchID string) (*repository.AboutPage, error) {
	if p, ok := m.pages[branchID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAboutRepo) Replace(_ context.Context, page *repository.AboutPage) error {
	m.pages[page.Section.BranchID] = page
	return nil
}

// ── collaborators ──

type mockTokenStore struct {
	revoked map[string]time.Duration
}

func (m *mockTokenStore) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

type mockFieldCache struct {
	data map[string][]byte
	hits int
}

func newMockFieldCache() *mockFieldCache {
	return &mockFieldCache{data: make(map[string][]byte)}
}

func (m *mockFieldCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(raw, dst)
}

func (m *mockFieldCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mockFieldCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type notification struct {
	email, applicationID, status, comment string
}

type mockNotifier struct {
	sent []notification
	err  error
}

func (m *mockNotifier) NotifyStatusChanged(_ context.Context, email, _, applicationID, status, comment string) error {
	m.sent = append(m.sent, notification{email: email, applicationID: applicationID, status: status, comment: comment})
	return m.err
}

// ── fixtures ──

type testEnv struct {
	repo      *repository.Repository
	users     *mockUserRepo
	branches  *mockBranchRepo
	fields    *mockFormFieldRepo
	apps      *mockApplicationRepo
	students  *mockStudentRepo
	news      *mockContentRepo[model.News]
	academics *mockContentRepo[model.AcademicProgram]
	careers   *mockContentRepo[model.Career]
	gallery   *mockContentRepo[model.GalleryCategory]
	about     *mockAboutRepo
}

func newTestEnv() *testEnv {
	students := newMockStudentRepo()
	env := &testEnv{
		users:    newMockUserRepo(),
		branches: newMockBranchRepo(),
		fields:   newMockFormFieldRepo(),
		apps:     newMockApplicationRepo(students),
		students: students,
		news: newMockContentRepo(
			func(n *model.News) *string { return &n.NewsID },
			func(n *model.News) string { return n.BranchID },
			func(n *model.News) bool { return n.IsPublished },
		),
		academics: newMockContentRepo(
			func(p *model.AcademicProgram) *string { return &p.ProgramID },
			func(p *model.AcademicProgram) string { return p.BranchID },
			func(p *model.AcademicProgram) bool { return p.IsActive },
		),
		careers: newMockContentRepo(
			func(c *model.Career) *string { return &c.CareerID },
			func(c *model.Career) string { return c.BranchID },
			func(c *model.Career) bool { return c.IsOpen },
		),
		gallery: newMockContentRepo(
			func(g *model.GalleryCategory) *string { return &g.CategoryID },
			func(g *model.GalleryCategory) string { return g.BranchID },
			func(g *model.GalleryCategory) bool { return g.IsVisible },
		),
		about: newMockAboutRepo(),
	}
	env.repo = &repository.Repository{
		User:        env.users,
		Branch:      env.branches,
		FormField:   env.fields,
		Application: env.apps,
		Student:     env.students,
		About:       env.about,
		News:        env.news,
		Academic:    env.academics,
		Gallery:     env.gallery,
		Career:      env.careers,
	}
	return env
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
		Storage: config.StorageConfig{Driver: "local", MaxUploadSize: 1 << 20, MaxImageWidth: 100},
		Admission: config.AdmissionConfig{AcademicYear: "2026-2027"},
	}
}

func testJWT(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(&cfg.Auth)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// seedBranch adds an enabled branch; the first one seeded becomes the default
func (e *testEnv) seedBranch(id, name string) *model.Branch {
	b := &model.Branch{BranchID: id, Name: name, IsEnabled: true, IsDefault: len(e.branches.branches) == 0}
	e.branches.branches[id] = b
	return b
}

// seedFields installs the stock admission form plus one custom field
func (e *testEnv) seedFields() {
	defs := []model.FormField{
		{Name: "firstName", Label: "First Name", FieldType: model.FieldTypeShortText, IsRequired: true, Section: "personal", DisplayOrder: 1},
		{Name: "lastName", Label: "Last Name", FieldType: model.FieldTypeShortText, IsRequired: true, Section: "personal", DisplayOrder: 2},
		{Name: "dateOfBirth", Label: "Date of Birth", FieldType: model.FieldTypeDate, IsRequired: true, Section: "personal", DisplayOrder: 3},
		{Name: "gender", Label: "Gender", FieldType: model.FieldTypeSelect, IsRequired: true, Section: "personal", DisplayOrder: 4, Options: []string{"Male", "Female", "Other"}},
		{Name: "phone", Label: "Phone", FieldType: model.FieldTypePhone, Section: "contact", DisplayOrder: 10},
		{Name: "fatherEmail", Label: "Father Email", FieldType: model.FieldTypeEmail, Section: "parent", DisplayOrder: 20},
		{Name: "applyingForGrade", Label: "Applying For Grade", FieldType: model.FieldTypeShortText, IsRequired: true, Section: "academic", DisplayOrder: 30},
		{Name: "favoriteColor", Label: "Favorite Color", FieldType: model.FieldTypeShortText, Section: "personal", DisplayOrder: 9},
	}
	for i := range defs {
		f := defs[i]
		f.IsVisible = true
		_ = e.fields.Create(context.Background(), &f)
	}
}
