package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// --- Service result → HTTP response ---

func toStudentResponse(s *domain.Student) studentResponse {
	return studentResponse{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		Role:            s.Role,
		DateOfBirth:     s.DateOfBirth,
		ClassCourse:     s.ClassCourse,
		ProfileImageURL: s.ProfileImageURL,
		CreatedAt:       s.CreatedAt.UTC(),
	}
}

func toTutorResponse(t *domain.Tutor) tutorResponse {
	return tutorResponse{
		ID:                t.ID,
		ApplicationID:     t.ApplicationID,
		Name:              t.Name,
		Email:             t.Email,
		Phone:             t.Phone,
		Subjects:          t.Subjects,
		Bio:               t.Bio,
		City:              t.City,
		HighestEducation:  t.HighestEducation,
		ExperienceYears:   t.ExperienceYears,
		ProfileImageURL:   t.ProfileImageURL,
		EducationProofURL: t.EducationProofURL,
		Status:            string(t.Status),
		CreatedAt:         t.CreatedAt.UTC(),
	}
}

func toTutorListResponse(tutors []*domain.Tutor) listTutorsResponse {
	out := make([]tutorResponse, len(tutors))
	for i, t := range tutors {
		out[i] = toTutorResponse(t)
	}
	return listTutorsResponse{Tutors: out}
}

func toProfileResponse(p *ports.Profile) profileResponse {
	resp := profileResponse{Role: p.Role}
	if p.Student != nil {
		s := toStudentResponse(p.Student)
		resp.Student = &s
	}
	if p.Tutor != nil {
		t := toTutorResponse(p.Tutor)
		resp.Tutor = &t
	}
	return resp
}

// --- Multipart helpers ---

// formFile opens the named multipart file. It returns (nil, noop, nil) when
// the field is absent so callers can decide whether the artifact is required.
func formFile(c echo.Context, name string) (*ports.FileUpload, func(), error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, func() {}, nil
	}
	return openFormFile(fh)
}

func openFormFile(fh *multipart.FileHeader) (*ports.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	upload := &ports.FileUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	return upload, func() { _ = f.Close() }, nil
}
