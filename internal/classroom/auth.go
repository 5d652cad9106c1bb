package classroom

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	classroomapi "google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"
)

// Scopes are the read-only scopes requested for the delegated service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/classroom.courses.readonly",
	"https://www.googleapis.com/auth/classroom.rosters.readonly",
	"https://www.googleapis.com/auth/classroom.coursework.me.readonly",
	"https://www.googleapis.com/auth/classroom.coursework.students.readonly",
	"https://www.googleapis.com/auth/classroom.student-submissions.students.readonly",
	"https://www.googleapis.com/auth/classroom.announcements.readonly",
	"https://www.googleapis.com/auth/classroom.profile.emails",
	"https://www.googleapis.com/auth/classroom.profile.photos",
}

// Credentials locate the service account key and the workspace admin it acts as.
type Credentials struct {
	ServiceAccountFile string
	AdminUserEmail     string
}

// Client pairs the generated Classroom service with the delegated HTTP client
// it was built on. Listings whose numeric fields the generated types cannot
// represent are read over HTTP directly.
type Client struct {
	Service *classroomapi.Service
	HTTP    *http.Client
}

// NewService builds a Classroom API client that impersonates the admin user
// through domain-wide delegation.
func NewService(ctx context.Context, creds Credentials) (*Client, error) {
	key, err := os.ReadFile(creds.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(key, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	jwtConfig.Subject = creds.AdminUserEmail

	httpClient := jwtConfig.Client(ctx)
	service, err := classroomapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("build classroom service (is the Classroom API enabled and delegation granted?): %w", err)
	}
	return &Client{Service: service, HTTP: httpClient}, nil
}
