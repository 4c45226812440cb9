package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// maxBodyBytes caps request bodies. Every payload here is a handful of short fields.
const maxBodyBytes = 64 << 10

var errBadBody = errors.New("invalid request body")

// formBinder is implemented by every request struct so the same endpoint
// accepts both JSON and HTML form posts.
type formBinder interface {
	bindForm(values url.Values)
}

// decodeBody fills dst from the request body.
//
// CONTENT TYPES:
//   - application/x-www-form-urlencoded, multipart/form-data → form fields
//   - anything else → JSON
//
// An empty JSON body is not an error: dst keeps its zero values and the
// service reports the missing fields as a validation failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst formBinder) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return fmt.Errorf("%w: %v", errBadBody, err)
		}
		dst.bindForm(r.PostForm)
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// flexString accepts a JSON string, number, boolean or null and keeps its
// text. Clients send duration both as 30 and as "30"; the service does the
// numeric coercion, so the handler only has to preserve what was sent.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '{', '[':
		return errors.New("expected a scalar value")
	default:
		*f = flexString(b)
	}
	return nil
}

// createUserRequest is the body of POST /api/users.
type createUserRequest struct {
	Username flexString `json:"username"` // required
}

func (req *createUserRequest) bindForm(v url.Values) {
	req.Username = flexString(v.Get("username"))
}

// addExerciseRequest is the body of POST /api/users/{_id}/exercises.
type addExerciseRequest struct {
	Description flexString `json:"description"` // required
	Duration    flexString `json:"duration"`    // required, number or numeric string
	Date        flexString `json:"date"`        // optional
}

func (req *addExerciseRequest) bindForm(v url.Values) {
	req.Description = flexString(v.Get("description"))
	req.Duration = flexString(v.Get("duration"))
	req.Date = flexString(v.Get("date"))
}
