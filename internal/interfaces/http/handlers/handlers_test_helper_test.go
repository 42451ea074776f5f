package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rampsync.backend/internal/domain/entities"
	"rampsync.backend/internal/interfaces/http/middleware"
)

var testUserID = uuid.MustParse("018f2a4e-7b7a-7c3d-9a43-3f1c2b6d8e01")

// withAuth stands in for the auth middleware
func withAuth(auth entities.AuthContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthContextKey, auth)
		if auth.IsUser() {
			c.Set(middleware.UserIDKey, auth.UserID)
		}
		c.Next()
	}
}

func userAuth() entities.AuthContext {
	return entities.AuthContext{UserID: testUserID, Email: "user@example.com", Role: entities.UserRoleUser}
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
