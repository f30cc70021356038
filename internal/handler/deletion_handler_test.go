package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/dto"
	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock DeletionService ---

type mockDeletionService struct {
	beginFn   func(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error)
	resendFn  func(ctx context.Context, challengeID uint, ownerID, accountEmail string) error
	verifyFn  func(ctx context.Context, challengeID uint, ownerID, code string) error
	confirmFn func(ctx context.Context, challengeID uint, ownerID string) error
}

func (m *mockDeletionService) Begin(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error) {
	return m.beginFn(ctx, experienceID, ownerID, accountEmail, suppliedEmail)
}
func (m *mockDeletionService) Resend(ctx context.Context, challengeID uint, ownerID, accountEmail string) error {
	return m.resendFn(ctx, challengeID, ownerID, accountEmail)
}
func (m *mockDeletionService) Verify(ctx context.Context, challengeID uint, ownerID, code string) error {
	return m.verifyFn(ctx, challengeID, ownerID, code)
}
func (m *mockDeletionService) Confirm(ctx context.Context, challengeID uint, ownerID string) error {
	return m.confirmFn(ctx, challengeID, ownerID)
}

// --- Tests ---

func TestBeginDeletion_Handler_Success(t *testing.T) {
	svc := &mockDeletionService{
		beginFn: func(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error) {
			return &models.VerificationChallenge{
				ID:                 7,
				OwnerID:            ownerID,
				TargetExperienceID: experienceID,
				Step:               models.StepAwaitingCode,
				ExpiresAt:          time.Now().Add(15 * time.Minute),
			}, nil
		},
	}

	e := echo.New()
	body := `{"email":"chef-1@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/experiences/1/deletion", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewDeletionHandler(svc)
	err := h.Begin(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.ChallengeResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, models.StepAwaitingCode, resp.Step)
}

func TestBeginDeletion_Handler_EmailMismatch(t *testing.T) {
	svc := &mockDeletionService{
		beginFn: func(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error) {
			return nil, service.ErrValidationFailed
		},
	}

	e := echo.New()
	body := `{"email":"wrong@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/experiences/1/deletion", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewDeletionHandler(svc)
	err := h.Begin(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

func TestBeginDeletion_Handler_SoldOutBlocked(t *testing.T) {
	svc := &mockDeletionService{
		beginFn: func(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error) {
			return nil, service.ErrDeletionBlocked
		},
	}

	e := echo.New()
	body := `{"email":"chef-1@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/experiences/1/deletion", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewDeletionHandler(svc)
	err := h.Begin(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestVerifyDeletion_Handler_Success(t *testing.T) {
	var gotCode string
	svc := &mockDeletionService{
		verifyFn: func(ctx context.Context, challengeID uint, ownerID, code string) error {
			gotCode = code
			return nil
		},
	}

	e := echo.New()
	body := `{"code":"4821XYZ"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/7/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewDeletionHandler(svc)
	err := h.Verify(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "4821XYZ", gotCode)
}

func TestVerifyDeletion_Handler_WrongCode(t *testing.T) {
	svc := &mockDeletionService{
		verifyFn: func(ctx context.Context, challengeID uint, ownerID, code string) error {
			return service.ErrVerificationFailed
		},
	}

	e := echo.New()
	body := `{"code":"0000AAA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/7/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewDeletionHandler(svc)
	err := h.Verify(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

func TestVerifyDeletion_Handler_TooManyAttempts(t *testing.T) {
	svc := &mockDeletionService{
		verifyFn: func(ctx context.Context, challengeID uint, ownerID, code string) error {
			return service.ErrTooManyAttempts
		},
	}

	e := echo.New()
	body := `{"code":"0000AAA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/7/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewDeletionHandler(svc)
	err := h.Verify(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestResendDeletion_Handler_Success(t *testing.T) {
	svc := &mockDeletionService{
		resendFn: func(ctx context.Context, challengeID uint, ownerID, accountEmail string) error {
			return nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/7/resend", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewDeletionHandler(svc)
	err := h.Resend(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestConfirmDeletion_Handler_Success(t *testing.T) {
	svc := &mockDeletionService{
		confirmFn: func(ctx context.Context, challengeID uint, ownerID string) error {
			return nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/7/confirm", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewDeletionHandler(svc)
	err := h.Confirm(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestConfirmDeletion_Handler_StepNotReached(t *testing.T) {
	svc := &mockDeletionService{
		confirmFn: func(ctx context.Context, challengeID uint, ownerID string) error {
			return service.ErrInvalidStep
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/7/confirm", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("7")

	h := NewDeletionHandler(svc)
	err := h.Confirm(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestConfirmDeletion_Handler_ChallengeNotFound(t *testing.T) {
	svc := &mockDeletionService{
		confirmFn: func(ctx context.Context, challengeID uint, ownerID string) error {
			return service.ErrChallengeNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deletion/99/confirm", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "chef-1")
	c.SetParamNames("id")
	c.SetParamValues("99")

	h := NewDeletionHandler(svc)
	err := h.Confirm(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
