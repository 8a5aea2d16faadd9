package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

type stubReviewService struct {
	listPendingFn func(ctx context.Context) ([]*domain.Tutor, error)
	approveFn     func(ctx context.Context, id string) (*ports.ApprovalResult, error)
	rejectFn      func(ctx context.Context, id string) (*domain.Tutor, error)
}

func (s *stubReviewService) ListPending(ctx context.Context) ([]*domain.Tutor, error) {
	return s.listPendingFn(ctx)
}

func (s *stubReviewService) Approve(ctx context.Context, id string) (*ports.ApprovalResult, error) {
	return s.approveFn(ctx, id)
}

func (s *stubReviewService) Reject(ctx context.Context, id string) (*domain.Tutor, error) {
	return s.rejectFn(ctx, id)
}

func TestAdminHandler_ListPending(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		listPendingFn: func(context.Context) ([]*domain.Tutor, error) {
			return []*domain.Tutor{{ID: "tutor_1", Status: domain.StatusPending}}, nil
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/admin/tutors/pending", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListPending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_Approve_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		approveFn: func(_ context.Context, id string) (*ports.ApprovalResult, error) {
			if id != "tutor_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &ports.ApprovalResult{
				TutorID:             "tutor_1",
				ApplicationID:       "TUTOR-0000TEST",
				Email:               "ravi@example.com",
				TempPassword:        "issued-pass",
				CredentialDelivered: true,
			}, nil
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/admin/approve-tutor/tutor_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tutor_1")

	if err := handler.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp approvalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TempPassword != "issued-pass" || !resp.CredentialDelivered {
		t.Fatalf("unexpected approval payload: %+v", resp)
	}
}

func TestAdminHandler_Approve_AlreadyProcessed(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		approveFn: func(context.Context, string) (*ports.ApprovalResult, error) {
			return nil, domain.ErrAlreadyProcessed
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/admin/approve-tutor/tutor_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tutor_1")

	if err := handler.Approve(c); !errors.Is(err, domain.ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestAdminHandler_Reject_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		rejectFn: func(_ context.Context, id string) (*domain.Tutor, error) {
			return &domain.Tutor{ID: id, ApplicationID: "TUTOR-0000TEST", Status: domain.StatusRejected}, nil
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/admin/reject-tutor/tutor_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tutor_1")

	if err := handler.Reject(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["tutor_id"] != "tutor_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
