package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	bCtx "github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/metrics"
	"github.com/x-xyz/auction/domain"
)

var (
	// ErrNoData is returned by Decode when the response carries no data
	ErrNoData = errors.New("response has no data")
)

// Client talks to the marketplace backend. Every call returns the decoded
// envelope; a non-2xx status or success:false comes back as a
// *domain.RequestError next to it.
type Client interface {
	Get(c bCtx.Ctx, path string, opts ...OptionsFunc) (*Response, error)
	Post(c bCtx.Ctx, path string, body interface{}, opts ...OptionsFunc) (*Response, error)
	Put(c bCtx.Ctx, path string, body interface{}, opts ...OptionsFunc) (*Response, error)
	Delete(c bCtx.Ctx, path string, body interface{}, opts ...OptionsFunc) (*Response, error)
	// Upload posts r as the multipart field "file"
	Upload(c bCtx.Ctx, path, filename string, r io.Reader, opts ...OptionsFunc) (*Response, error)
}

// CredentialProvider supplies the bearer token. Clear is called when the
// backend rejects it.
type CredentialProvider interface {
	Get() (string, bool)
	Clear()
}

// Tracker is told about every call in flight
type Tracker interface {
	Track() func()
}

type ClientCfg struct {
	HttpClient http.Client
	BaseURL    string
	// Timeout of a single call, 0 means none
	Timeout     time.Duration
	Credentials CredentialProvider
	Notifier    domain.Notifier
	Navigator   domain.Navigator
	Loading     Tracker
	Metrics     metrics.Service
	// OnUnauthenticated runs after a 401 cleared the credential
	OnUnauthenticated func(c bCtx.Ctx)
}

// Response is the envelope of every backend answer
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Decode unmarshals data into v
func (r *Response) Decode(v interface{}) error {
	if r == nil || len(r.Data) == 0 || string(r.Data) == "null" {
		return ErrNoData
	}
	return json.Unmarshal(r.Data, v)
}

type Options struct {
	// Toast shows the success notification, on by default
	Toast bool
	Query url.Values
}

type OptionsFunc func(*Options) error

func GetOptions(opts ...OptionsFunc) (Options, error) {
	res := Options{Toast: true}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// Quiet suppresses the success notification
func Quiet() OptionsFunc {
	return func(o *Options) error {
		o.Toast = false
		return nil
	}
}

func WithQuery(q url.Values) OptionsFunc {
	return func(o *Options) error {
		if o.Query == nil {
			o.Query = url.Values{}
		}
		for k, vs := range q {
			for _, v := range vs {
				o.Query.Add(k, v)
			}
		}
		return nil
	}
}

// Paths of the backend endpoints
const (
	PathLogin         = "/api/Authen/Login"
	PathRegister      = "/api/Authen/Register"
	PathVerify        = "/api/Authen/Verify"
	PathItem          = "/api/Item"
	PathItemHome      = "/api/Item/home"
	PathItemPerson    = "/api/Item/person"
	PathBid           = "/api/Bid"
	PathRating        = "/api/Rating"
	PathUser          = "/api/User"
	PathUserProfile   = "/api/User/profile"
	PathCategory      = "/api/Category"
	PathCategoryAll   = "/api/Category/all"
	PathPaymentPay    = "/api/Payment/pay"
	PathDashboard     = "/api/Admin/dashboard"
	PathUpload        = "/api/upload"
	PathItemFeed      = "/ws/items"
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
)
