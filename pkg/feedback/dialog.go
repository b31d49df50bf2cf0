package feedback

import (
	"errors"
	"net/url"
	"strings"

	"pitchboard/pkg/reporting"
)

var (
	ErrEmptyEventID = errors.New("event id is required")
	ErrInvalidDSN   = errors.New("invalid reporting DSN")
)

// DialogOptions are the texts of the remote feedback form. Empty fields use the form's own defaults.
type DialogOptions struct {
	Title          string `json:"title,omitempty"`
	Subtitle       string `json:"subtitle,omitempty"`
	Subtitle2      string `json:"subtitle2,omitempty"`
	LabelName      string `json:"labelName,omitempty"`
	LabelEmail     string `json:"labelEmail,omitempty"`
	LabelComments  string `json:"labelComments,omitempty"`
	LabelClose     string `json:"labelClose,omitempty"`
	LabelSubmit    string `json:"labelSubmit,omitempty"`
	ErrorGeneric   string `json:"errorGeneric,omitempty"`
	ErrorFormEntry string `json:"errorFormEntry,omitempty"`
	SuccessMessage string `json:"successMessage,omitempty"`
}

// Merge returns o with every non-empty field of override applied on top.
func (o DialogOptions) Merge(override DialogOptions) DialogOptions {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return DialogOptions{
		Title:          pick(o.Title, override.Title),
		Subtitle:       pick(o.Subtitle, override.Subtitle),
		Subtitle2:      pick(o.Subtitle2, override.Subtitle2),
		LabelName:      pick(o.LabelName, override.LabelName),
		LabelEmail:     pick(o.LabelEmail, override.LabelEmail),
		LabelComments:  pick(o.LabelComments, override.LabelComments),
		LabelClose:     pick(o.LabelClose, override.LabelClose),
		LabelSubmit:    pick(o.LabelSubmit, override.LabelSubmit),
		ErrorGeneric:   pick(o.ErrorGeneric, override.ErrorGeneric),
		ErrorFormEntry: pick(o.ErrorFormEntry, override.ErrorFormEntry),
		SuccessMessage: pick(o.SuccessMessage, override.SuccessMessage),
	}
}

func (o DialogOptions) params() [][2]string {
	return [][2]string{
		{"title", o.Title},
		{"subtitle", o.Subtitle},
		{"subtitle2", o.Subtitle2},
		{"labelName", o.LabelName},
		{"labelEmail", o.LabelEmail},
		{"labelComments", o.LabelComments},
		{"labelClose", o.LabelClose},
		{"labelSubmit", o.LabelSubmit},
		{"errorGeneric", o.ErrorGeneric},
		{"errorFormEntry", o.ErrorFormEntry},
		{"successMessage", o.SuccessMessage},
	}
}

// DialogURL builds the address of the remote-rendered feedback form bound to eventID.
// The form lives under the DSN host: {scheme}://{host}{path prefix}/api/embed/error-page/.
func DialogURL(dsn, eventID string, opts DialogOptions, user *reporting.User) (string, error) {
	if eventID == "" {
		return "", ErrEmptyEventID
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" || u.User == nil || u.User.Username() == "" {
		return "", ErrInvalidDSN
	}

	// the last path segment is the project id
	prefix := strings.TrimRight(u.Path, "/")
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		prefix = prefix[:i]
	} else {
		return "", ErrInvalidDSN
	}

	endpoint := url.URL{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   prefix + "/api/embed/error-page/",
	}

	q := url.Values{}
	q.Set("dsn", dsn)
	q.Set("eventId", eventID)
	if user != nil {
		if user.Username != "" {
			q.Set("name", user.Username)
		}
		if user.Email != "" {
			q.Set("email", user.Email)
		}
	}
	for _, p := range opts.params() {
		if p[1] != "" {
			q.Set(p[0], p[1])
		}
	}
	endpoint.RawQuery = q.Encode()

	return endpoint.String(), nil
}
