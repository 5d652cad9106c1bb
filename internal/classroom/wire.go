package classroom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"
)

// The generated types declare grades and max points as float64 with omitempty,
// so a returned 0 decodes the same as an absent field. These listings are
// decoded into pointer fields instead.

type courseWorkRecord struct {
	ID           string   `json:"id"`
	CourseID     string   `json:"courseId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	WorkType     string   `json:"workType"`
	MaxPoints    *float64 `json:"maxPoints"`
	CreationTime string   `json:"creationTime"`
	UpdateTime   string   `json:"updateTime"`
}

type courseWorkPage struct {
	CourseWork    []*courseWorkRecord `json:"courseWork"`
	NextPageToken string              `json:"nextPageToken"`
}

type submissionRecord struct {
	ID            string   `json:"id"`
	CourseWorkID  string   `json:"courseWorkId"`
	UserID        string   `json:"userId"`
	State         string   `json:"state"`
	AssignedGrade *float64 `json:"assignedGrade"`
	DraftGrade    *float64 `json:"draftGrade"`
	CreationTime  string   `json:"creationTime"`
	UpdateTime    string   `json:"updateTime"`
}

type submissionPage struct {
	StudentSubmissions []*submissionRecord `json:"studentSubmissions"`
	NextPageToken      string              `json:"nextPageToken"`
}

// getJSON issues a GET for path below basePath and decodes the body into out.
// Non-2xx responses come back as *googleapi.Error, like the generated calls.
func getJSON(ctx context.Context, client *http.Client, basePath, path, pageToken string, out any) error {
	query := url.Values{}
	query.Set("alt", "json")
	query.Set("prettyPrint", "false")
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}
	endpoint := strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(path, "/") + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer googleapi.CloseBody(resp)

	if err := googleapi.CheckResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func courseWorkPath(courseID string) string {
	return "v1/courses/" + url.PathEscape(courseID) + "/courseWork"
}

func submissionsPath(courseID, courseWorkID string) string {
	return courseWorkPath(courseID) + "/" + url.PathEscape(courseWorkID) + "/studentSubmissions"
}
