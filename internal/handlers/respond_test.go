package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pinatlas/internal/apperr"
)

func TestStatusForLogicCode(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{apperr.CodeNotFound, http.StatusNotFound},
		{apperr.CodeConflict, http.StatusConflict},
		{apperr.CodeCredentials, http.StatusUnauthorized},
		{apperr.CodeForbidden, http.StatusForbidden},
		{apperr.CodeStorage, http.StatusInternalServerError},
		{apperr.CodePartialFailure, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForLogicCode(tt.code); got != tt.status {
			t.Fatalf("code %s: expected %d, got %d", tt.code, tt.status, got)
		}
	}
}

func TestTranslateErrorValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	translateError(c, "TEST", apperr.NewValidation(apperr.KindValue, "title", "title is empty"))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestTranslateErrorPartialFailureNamesStep(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	translateError(c, "TEST", apperr.PartialFailure("pins", "could not remove map's pins"))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "failedStep") || !strings.Contains(body, "pins") {
		t.Fatalf("expected failed step in body, got %s", body)
	}
}

func TestTranslateErrorUnknownErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	translateError(c, "TEST", errTest)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
}

func TestHandlePanicRecoversWithInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	func() {
		defer handlePanic(c, "TEST")
		panic("boom")
	}()

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after recovered panic, got %d", recorder.Code)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }
