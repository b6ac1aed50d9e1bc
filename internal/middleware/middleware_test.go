package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/academix/journey-backend/internal/config"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/service"
	"github.com/academix/journey-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStudentAccess struct {
	owners map[string]string // student id -> parent id
	err    error
}

func (f *fakeStudentAccess) IsOwnedBy(_ context.Context, studentID, parentID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.owners[studentID] == parentID, nil
}

func newAuthService() *service.AuthService {
	cfg := &config.Config{
		JWTSecret:  "middleware-test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	// Token operations never touch the store.
	return service.NewAuthService(cfg, nil)
}

func tokenFor(t *testing.T, svc *service.AuthService, id string, role model.Role) string {
	t.Helper()
	token, err := svc.GenerateToken(&model.Profile{ID: id, Email: id + "@school.test", Role: role})
	require.NoError(t, err)
	return token
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": "ok"})
}

func errorCode(t *testing.T, body *httptest.ResponseRecorder) string {
	t.Helper()
	var parsed struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body.Body.Bytes(), &parsed))
	require.NotNil(t, parsed.Error)
	return parsed.Error.Code
}

func TestRequireAuthMissingToken(t *testing.T) {
	svc := newAuthService()
	r := gin.New()
	r.GET("/secure", RequireAuth(svc), okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", errorCode(t, w))
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	svc := newAuthService()
	r := gin.New()
	r.GET("/secure", RequireAuth(svc), okHandler)

	for _, header := range []string{"Basic abc123", "Bearer", "garbage"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "TOKEN_REQUIRED", errorCode(t, w), "header %q", header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	svc := newAuthService()
	r := gin.New()
	r.GET("/secure", RequireAuth(svc), okHandler)

	token := tokenFor(t, svc, "user-1", model.RoleTeacher)
	truncated := token[:len(token)-4]

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+truncated)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
}

func TestRequireAuthAttachesClaims(t *testing.T) {
	svc := newAuthService()
	r := gin.New()
	r.GET("/secure", RequireAuth(svc), func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "user-42", model.RoleAdmin))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
	assert.Contains(t, w.Body.String(), string(model.RoleAdmin))
}

func TestRequireRolesDeniesWrongRole(t *testing.T) {
	svc := newAuthService()
	r := gin.New()
	r.GET("/admin", RequireAuth(svc), RequireAdmin(), okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "user-1", model.RoleTeacher))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ADMIN_ACCESS_ONLY", errorCode(t, w))
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	svc := newAuthService()
	r := gin.New()
	r.POST("/grades", RequireAuth(svc), RequireRoles(model.RoleAdmin, model.RoleTeacher), okHandler)

	for _, role := range []model.Role{model.RoleAdmin, model.RoleTeacher} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/grades", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "user-1", role))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/grades", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "user-1", model.RoleParent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	// Misconfigured chain: role gate without RequireAuth in front.
	r := gin.New()
	r.GET("/admin", RequireAdmin(), okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func ownershipRouter(svc *service.AuthService, students StudentAccess) *gin.Engine {
	r := gin.New()
	gate := CanAccessStudentData(students, zerolog.Nop())
	r.GET("/records/:student_id", RequireAuth(svc), gate, okHandler)
	r.POST("/records", RequireAuth(svc), gate, okHandler)
	return r
}

func TestOwnershipParentAllowedForOwnChild(t *testing.T) {
	svc := newAuthService()
	students := &fakeStudentAccess{owners: map[string]string{"student-1": "parent-1"}}
	r := ownershipRouter(svc, students)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/student-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "parent-1", model.RoleParent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnershipParentDeniedForOtherChild(t *testing.T) {
	svc := newAuthService()
	students := &fakeStudentAccess{owners: map[string]string{"student-1": "parent-1"}}
	r := ownershipRouter(svc, students)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/student-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "parent-2", model.RoleParent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_YOUR_CHILD", errorCode(t, w))
}

func TestOwnershipStaffBypass(t *testing.T) {
	svc := newAuthService()
	students := &fakeStudentAccess{owners: map[string]string{}}
	r := ownershipRouter(svc, students)

	for _, role := range []model.Role{model.RoleAdmin, model.RoleTeacher} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/records/student-1", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "staff-1", role))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestOwnershipStudentIDFromBody(t *testing.T) {
	svc := newAuthService()
	students := &fakeStudentAccess{owners: map[string]string{"student-1": "parent-1"}}
	r := ownershipRouter(svc, students)

	body := strings.NewReader(`{"studentId":"student-1","score":88}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/records", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "parent-1", model.RoleParent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnershipBodyRemainsBindable(t *testing.T) {
	// The gate consumes the body to find the student id; a downstream
	// handler must still be able to bind the same payload.
	svc := newAuthService()
	students := &fakeStudentAccess{owners: map[string]string{"student-1": "parent-1"}}

	r := gin.New()
	r.POST("/records", RequireAuth(svc), CanAccessStudentData(students, zerolog.Nop()), func(c *gin.Context) {
		var req struct {
			StudentID string  `json:"studentId" binding:"required"`
			Score     float64 `json:"score" binding:"required"`
		}
		if fields := validator.Bind(c, &req); fields != nil {
			c.JSON(http.StatusBadRequest, fields)
			return
		}
		c.JSON(http.StatusOK, gin.H{"studentId": req.StudentID, "score": req.Score})
	})

	body := strings.NewReader(`{"studentId":"student-1","score":88}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/records", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "parent-1", model.RoleParent))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"studentId":"student-1"`)
	assert.Contains(t, w.Body.String(), `"score":88`)
}

func TestOwnershipMissingStudentID(t *testing.T) {
	svc := newAuthService()
	students := &fakeStudentAccess{owners: map[string]string{}}
	r := ownershipRouter(svc, students)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "parent-1", model.RoleParent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STUDENT_ID_REQUIRED", errorCode(t, w))
}

func TestOwnershipLookupFailure(t *testing.T) {
	svc := newAuthService()
	students := &fakeStudentAccess{err: errors.New("connection refused")}
	r := ownershipRouter(svc, students)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/student-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, "parent-1", model.RoleParent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}
