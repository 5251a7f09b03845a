package character

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/internal/testutil"
	mock_character "github.com/lorekeep/lorekeep/x/character/mock"
)

func TestHandlerCreateRequiresFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nothing reaches storage when required fields are missing
	mockRepo := mock_character.NewMockRepository(ctrl)
	h := NewHandler(NewService(mockRepo))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/characters", strings.NewReader(`{"name":"Elara"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(core.RequesterIdCtxKey, "owner")

	err := h.Create(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Name, role, and description are required")
	}
}

func TestHandlerRejectsAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	h := NewHandler(NewService(mockRepo))

	c, _, rec, _ := testutil.CreateHttpRequest()

	err := h.List(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestHandlerUpdateMalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	h := NewHandler(NewService(mockRepo))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"Renamed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/characters/:id")
	c.SetParamNames("id")
	c.SetParamValues("definitely-not-an-id")
	c.Set(core.RequesterIdCtxKey, "owner")

	err := h.Update(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid ID")
	}
}
