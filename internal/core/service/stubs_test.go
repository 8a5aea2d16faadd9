package service

import (
	"context"
	"fmt"
	"io"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// In-memory doubles for the repository and collaborator ports. They mimic
// the store semantics the services rely on: unique email/phone per
// collection and conditional review transitions.

type stubStudentRepo struct {
	students map[string]*domain.Student
	seq      int
}

func newStubStudentRepo() *stubStudentRepo {
	return &stubStudentRepo{students: make(map[string]*domain.Student)}
}

func cloneStudent(s *domain.Student) *domain.Student {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubStudentRepo) Create(_ context.Context, student *domain.Student) (*domain.Student, error) {
	for _, existing := range r.students {
		if existing.Email == student.Email {
			return nil, domain.ErrEmailTaken
		}
		if student.Phone != "" && existing.Phone == student.Phone {
			return nil, domain.ErrPhoneTaken
		}
	}
	copy := cloneStudent(student)
	r.seq++
	copy.ID = fmt.Sprintf("student_%d", r.seq)
	r.students[copy.ID] = cloneStudent(copy)
	return copy, nil
}

func (r *stubStudentRepo) FindByID(_ context.Context, id string) (*domain.Student, error) {
	if s, ok := r.students[id]; ok {
		return cloneStudent(s), nil
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) FindByEmail(_ context.Context, email string) (*domain.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			return cloneStudent(s), nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, bool, error) {
	var emailTaken, phoneTaken bool
	for _, s := range r.students {
		if s.Email == email {
			emailTaken = true
		}
		if phone != "" && s.Phone == phone {
			phoneTaken = true
		}
	}
	return emailTaken, phoneTaken, nil
}

func (r *stubStudentRepo) UpdateName(_ context.Context, id, name string) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	s.Name = name
	return cloneStudent(s), nil
}

type stubTutorRepo struct {
	tutors map[string]*domain.Tutor
	seq    int
}

func newStubTutorRepo() *stubTutorRepo {
	return &stubTutorRepo{tutors: make(map[string]*domain.Tutor)}
}

func cloneTutor(t *domain.Tutor) *domain.Tutor {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Subjects = append([]string(nil), t.Subjects...)
	return &clone
}

func (r *stubTutorRepo) Create(_ context.Context, tutor *domain.Tutor) (*domain.Tutor, error) {
	for _, existing := range r.tutors {
		if existing.Email == tutor.Email {
			return nil, domain.ErrEmailTaken
		}
		if tutor.Phone != "" && existing.Phone == tutor.Phone {
			return nil, domain.ErrPhoneTaken
		}
	}
	copy := cloneTutor(tutor)
	r.seq++
	copy.ID = fmt.Sprintf("tutor_%d", r.seq)
	r.tutors[copy.ID] = cloneTutor(copy)
	return copy, nil
}

func (r *stubTutorRepo) FindByID(_ context.Context, id string) (*domain.Tutor, error) {
	if t, ok := r.tutors[id]; ok {
		return cloneTutor(t), nil
	}
	return nil, domain.ErrTutorNotFound
}

func (r *stubTutorRepo) FindByEmail(_ context.Context, email string) (*domain.Tutor, error) {
	for _, t := range r.tutors {
		if t.Email == email {
			return cloneTutor(t), nil
		}
	}
	return nil, domain.ErrTutorNotFound
}

func (r *stubTutorRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, bool, error) {
	var emailTaken, phoneTaken bool
	for _, t := range r.tutors {
		if t.Email == email {
			emailTaken = true
		}
		if phone != "" && t.Phone == phone {
			phoneTaken = true
		}
	}
	return emailTaken, phoneTaken, nil
}

func (r *stubTutorRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus) ([]*domain.Tutor, error) {
	var out []*domain.Tutor
	for _, t := range r.tutors {
		if t.Status == status {
			out = append(out, cloneTutor(t))
		}
	}
	return out, nil
}

func (r *stubTutorRepo) ApproveWithCredential(_ context.Context, id, passwordHash string) (*domain.Tutor, error) {
	t, ok := r.tutors[id]
	if !ok {
		return nil, domain.ErrTutorNotFound
	}
	if !t.Status.CanTransitionTo(domain.StatusApproved) {
		return nil, domain.ErrAlreadyProcessed
	}
	t.Status = domain.StatusApproved
	t.PasswordHash = passwordHash
	return cloneTutor(t), nil
}

func (r *stubTutorRepo) Reject(_ context.Context, id string) (*domain.Tutor, error) {
	t, ok := r.tutors[id]
	if !ok {
		return nil, domain.ErrTutorNotFound
	}
	if !t.Status.CanTransitionTo(domain.StatusRejected) {
		return nil, domain.ErrAlreadyProcessed
	}
	t.Status = domain.StatusRejected
	return cloneTutor(t), nil
}

func (r *stubTutorRepo) UpdateName(_ context.Context, id, name string) (*domain.Tutor, error) {
	t, ok := r.tutors[id]
	if !ok {
		return nil, domain.ErrTutorNotFound
	}
	t.Name = name
	return cloneTutor(t), nil
}

func (r *stubTutorRepo) UpdateNameByEmail(_ context.Context, email, name string) error {
	for _, t := range r.tutors {
		if t.Email == email {
			t.Name = name
			return nil
		}
	}
	return domain.ErrTutorNotFound
}

type stubAdminRepo struct {
	admins map[string]*domain.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.admins[admin.Email]; exists {
		return nil, domain.ErrAdminExists
	}
	clone := *admin
	clone.ID = "admin_" + admin.Email
	r.admins[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if a, ok := r.admins[email]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAdminNotFound
}

type stubMediaStore struct {
	uploads   int
	imageErr  error
	proofErr  error
	lastImage string
	lastProof string
}

func (m *stubMediaStore) UploadImage(_ context.Context, file ports.FileUpload) (string, error) {
	if m.imageErr != nil {
		return "", m.imageErr
	}
	if file.Reader != nil {
		_, _ = io.ReadAll(file.Reader)
	}
	m.uploads++
	m.lastImage = fmt.Sprintf("https://cdn.test/images/%d", m.uploads)
	return m.lastImage, nil
}

func (m *stubMediaStore) UploadDocument(_ context.Context, file ports.FileUpload) (string, error) {
	if m.proofErr != nil {
		return "", m.proofErr
	}
	if file.Reader != nil {
		_, _ = io.ReadAll(file.Reader)
	}
	m.uploads++
	m.lastProof = fmt.Sprintf("https://cdn.test/docs/%d", m.uploads)
	return m.lastProof, nil
}

type stubMailer struct {
	err          error
	calls        int
	lastEmail    string
	lastPassword string
}

func (m *stubMailer) SendTutorCredentials(_ context.Context, _, email, _, password string) error {
	m.calls++
	m.lastEmail = email
	m.lastPassword = password
	return m.err
}

type stubThrottle struct {
	allow bool
	err   error
	keys  []string
}

func (t *stubThrottle) Allow(_ context.Context, key string) (bool, error) {
	t.keys = append(t.keys, key)
	return t.allow, t.err
}
