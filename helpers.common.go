package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrBookNotFound = errors.New("book not found")

type (
	ContextKey        string
	missingFieldError string
	invalidFieldError string
)

const (
	RequestIDPrefix      string     = "r"
	ContextRequestID     ContextKey = "request.id"
	ContextRequestNumber ContextKey = "request.number"
	ContextAuthClaims    ContextKey = "request.claims"
)

// PublishedDateLayout is the expected calendar date format of the
// publishedDate field on create and update payloads.
const PublishedDateLayout = "2006-01-02"

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

func (i invalidFieldError) Error() string {
	return string(i) + " is not valid"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetClaimsFromContext returns the authenticated claims previously set
// by the authentication middleware, or nil on unauthenticated requests.
func GetClaimsFromContext(ctx context.Context) *Claims {
	if val := ctx.Value(ContextAuthClaims); val != nil {
		return val.(*Claims)
	}
	return nil
}

// DecodeRequestBody is a helper function to read a json request payload.
func DecodeRequestBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("invalid request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// ParseBookID converts the path parameter into a book identifier.
func ParseBookID(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, invalidFieldError("id")
	}
	return uint(id), nil
}

// ValidateCreateBookRequestBody is a helper function to check if the content of a book creation request is valid.
func ValidateCreateBookRequestBody(req *CreateBookRequest) error {
	if req.Title == nil || len(*req.Title) == 0 {
		return missingFieldError("title")
	}

	if req.Author == nil || len(*req.Author) == 0 {
		return missingFieldError("author")
	}

	if req.PublishedDate == nil || len(*req.PublishedDate) == 0 {
		return missingFieldError("publishedDate")
	}

	if _, err := time.Parse(PublishedDateLayout, *req.PublishedDate); err != nil {
		return invalidFieldError("publishedDate")
	}

	if req.NumberOfPages == nil {
		return missingFieldError("numberOfPages")
	}

	return nil
}

// ValidateUpdateBookRequestBody is a helper function to check if the content of a book update request is valid.
// All fields are optional but the provided ones must carry usable values.
func ValidateUpdateBookRequestBody(req *UpdateBookRequest) error {
	if req.Title != nil && len(*req.Title) == 0 {
		return invalidFieldError("title")
	}

	if req.Author != nil && len(*req.Author) == 0 {
		return invalidFieldError("author")
	}

	if req.PublishedDate != nil {
		if _, err := time.Parse(PublishedDateLayout, *req.PublishedDate); err != nil {
			return invalidFieldError("publishedDate")
		}
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
