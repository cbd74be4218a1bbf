package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestLoginHandler ensures api handler can issue a bearer token.
func TestLoginHandler(t *testing.T) {
	clock := NewMockClocker()
	ts := &MockTokenProvider{
		IssueFunc: func(username string) (string, error) {
			assert.Equal(t, "john", username)
			return "signed.jwt.token", nil
		},
	}
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), nil, ts)

	t.Run("should pass: valid credentials payload", func(t *testing.T) {
		payload := []byte(`{"username":"john", "password":"secret"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.Login(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"token":"signed.jwt.token"}`, string(data))
	})

	t.Run("should fail: undecodable payload", func(t *testing.T) {
		payload := []byte(`{"username":1}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.Login(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.JSONEq(t, `{"error":"failed to decode the request body"}`, string(data))
	})

	t.Run("should fail: signing failure", func(t *testing.T) {
		failing := &MockTokenProvider{
			IssueFunc: func(username string) (string, error) {
				return "", errors.New("signing failure")
			},
		}
		api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), nil, failing)
		payload := []byte(`{"username":"john", "password":"secret"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.Login(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.JSONEq(t, `{"error":"Error issuing token"}`, string(data))
	})
}
