package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"golang.org/x/xerrors"
)

// DisplayLayout is how bid windows are shown to users, in local time
const DisplayLayout = "15:04 02/01/2006"

// Timestamp is an instant sent by the backend in UTC. Values without a zone
// designator are read as UTC as well.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC()}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return xerrors.Errorf("timestamp %s: %w", string(b), err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}
	return xerrors.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Display renders the instant in loc, "--" when unset
func (t Timestamp) Display(loc *time.Location) string {
	if t.IsZero() {
		return "--"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}
