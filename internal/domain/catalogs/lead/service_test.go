package lead

import (
	"context"
	"testing"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/domain"
)

// mockRepository is a func-field test double for Repository.
type mockRepository struct {
	CreateFunc       func(ctx context.Context, l *Lead) error
	GetByIDFunc      func(ctx context.Context, leadID id.ID) (*Lead, error)
	GetByCodeFunc    func(ctx context.Context, code string) (*Lead, error)
	UpdateFunc       func(ctx context.Context, l *Lead) error
	DeleteFunc       func(ctx context.Context, leadID id.ID) error
	SetDeletionFunc  func(ctx context.Context, leadID id.ID, marked bool) error
	ListFunc         func(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Lead], error)
	ExistsFunc       func(ctx context.Context, leadID id.ID) (bool, error)
	ExistsByCodeFunc func(ctx context.Context, code string) (bool, error)
}

func (m *mockRepository) Create(ctx context.Context, l *Lead) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, leadID id.ID) (*Lead, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, leadID)
	}
	return nil, apperror.NewNotFound("lead", leadID.String())
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (*Lead, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, apperror.NewNotFound("lead", code)
}

func (m *mockRepository) Update(ctx context.Context, l *Lead) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, l)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, leadID id.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, leadID)
	}
	return nil
}

func (m *mockRepository) SetDeletionMark(ctx context.Context, leadID id.ID, marked bool) error {
	if m.SetDeletionFunc != nil {
		return m.SetDeletionFunc(ctx, leadID, marked)
	}
	return nil
}

func (m *mockRepository) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Lead], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return domain.ListResult[*Lead]{}, nil
}

func (m *mockRepository) Exists(ctx context.Context, leadID id.ID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, leadID)
	}
	return false, nil
}

func (m *mockRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if m.ExistsByCodeFunc != nil {
		return m.ExistsByCodeFunc(ctx, code)
	}
	return false, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func storedLead(status Status) *Lead {
	l := NewLead("LD-TEST", "Acme prospect")
	l.Status = status
	return l
}

func TestCreate_AssignsCodeAndDefaultStatus(t *testing.T) {
	var created *Lead
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, l *Lead) error {
			created = l
			return nil
		},
	}
	svc := NewService(repo, passthroughTx{})

	l := NewLead("", "Walk-in prospect")
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("repository Create was not called")
	}
	if created.Code == "" {
		t.Error("code was not assigned")
	}
	if created.Status != StatusNew {
		t.Errorf("status = %q, want %q", created.Status, StatusNew)
	}
}

func TestCreate_RejectsInvalidEmail(t *testing.T) {
	svc := NewService(&mockRepository{}, passthroughTx{})

	l := NewLead("LD-1", "Bad email")
	email := "not-an-email"
	l.Email = &email

	err := svc.Create(context.Background(), l)
	if !apperror.IsValidation(err) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
}

func TestUpdateStatus_MovesLeadForward(t *testing.T) {
	stored := storedLead(StatusNew)
	var updated *Lead
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, leadID id.ID) (*Lead, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, l *Lead) error {
			updated = l
			return nil
		},
	}
	svc := NewService(repo, passthroughTx{})

	l, err := svc.UpdateStatus(context.Background(), stored.ID, StatusContacted)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if l.Status != StatusContacted {
		t.Errorf("status = %q, want %q", l.Status, StatusContacted)
	}
	if updated == nil {
		t.Fatal("repository Update was not called")
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	stored := storedLead(StatusNew)
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, leadID id.ID) (*Lead, error) {
			return stored, nil
		},
	}
	svc := NewService(repo, passthroughTx{})

	_, err := svc.UpdateStatus(context.Background(), stored.ID, Status("archived"))
	if !apperror.IsValidation(err) {
		t.Fatalf("UpdateStatus() error = %v, want validation error", err)
	}
}

func TestUpdateStatus_ConvertedIsFinal(t *testing.T) {
	stored := storedLead(StatusConverted)
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, leadID id.ID) (*Lead, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, l *Lead) error {
			t.Fatal("Update must not be called for a converted lead")
			return nil
		},
	}
	svc := NewService(repo, passthroughTx{})

	_, err := svc.UpdateStatus(context.Background(), stored.ID, StatusLost)
	if err == nil {
		t.Fatal("UpdateStatus() expected error for converted lead")
	}

	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeBusinessRule {
		t.Errorf("error = %v, want %s", err, apperror.CodeBusinessRule)
	}
}
