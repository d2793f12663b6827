package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/base/metrics"
	"github.com/x-xyz/auction/domain"
)

func NewClient(cfg *ClientCfg) Client {
	cl := &client{
		client:            cfg.HttpClient,
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		timeout:           cfg.Timeout,
		credentials:       cfg.Credentials,
		notifier:          cfg.Notifier,
		navigator:         cfg.Navigator,
		loading:           cfg.Loading,
		met:               cfg.Metrics,
		onUnauthenticated: cfg.OnUnauthenticated,
	}
	if cl.met == nil {
		cl.met = metrics.NewLog("api")
	}
	return cl
}

type client struct {
	client            http.Client
	baseURL           string
	timeout           time.Duration
	credentials       CredentialProvider
	notifier          domain.Notifier
	navigator         domain.Navigator
	loading           Tracker
	met               metrics.Service
	onUnauthenticated func(c bCtx.Ctx)
}

func (cl *client) Get(c bCtx.Ctx, path string, opts ...OptionsFunc) (*Response, error) {
	return cl.send(c, http.MethodGet, path, nil, domain.MsgDataFetched, opts)
}

func (cl *client) Post(c bCtx.Ctx, path string, body interface{}, opts ...OptionsFunc) (*Response, error) {
	return cl.send(c, http.MethodPost, path, body, domain.MsgDataSaved, opts)
}

func (cl *client) Put(c bCtx.Ctx, path string, body interface{}, opts ...OptionsFunc) (*Response, error) {
	return cl.send(c, http.MethodPut, path, body, domain.MsgDataUpdated, opts)
}

func (cl *client) Delete(c bCtx.Ctx, path string, body interface{}, opts ...OptionsFunc) (*Response, error) {
	return cl.send(c, http.MethodDelete, path, body, domain.MsgDataDeleted, opts)
}

func (cl *client) Upload(c bCtx.Ctx, path, filename string, r io.Reader, opts ...OptionsFunc) (*Response, error) {
	o, err := GetOptions(opts...)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		c.WithFields(log.Fields{"filename": filename, "err": err}).Error("ioutil.ReadAll failed")
		return nil, xerrors.Errorf("read %s: %w", filename, err)
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set(HeaderContentType, mimetype.Detect(data).String())
	part, err := w.CreatePart(h)
	if err != nil {
		c.WithField("err", err).Error("w.CreatePart failed")
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		c.WithField("err", err).Error("part.Write failed")
		return nil, err
	}
	if err := w.Close(); err != nil {
		c.WithField("err", err).Error("w.Close failed")
		return nil, err
	}

	return cl.do(c, http.MethodPost, path, buf, w.FormDataContentType(), domain.MsgDataSaved, o)
}

func (cl *client) send(c bCtx.Ctx, method, path string, body interface{}, okMsg string, opts []OptionsFunc) (*Response, error) {
	o, err := GetOptions(opts...)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.WithFields(log.Fields{"path": path, "err": err}).Error("json.Marshal failed")
			return nil, err
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}

	return cl.do(c, method, path, reader, contentType, okMsg, o)
}

func (cl *client) do(c bCtx.Ctx, method, path string, body io.Reader, contentType, okMsg string, o Options) (*Response, error) {
	if cl.loading != nil {
		defer cl.loading.Track()()
	}

	requestID := uuid.NewString()
	c = bCtx.WithValue(c, "requestID", requestID)
	c, cancel := bCtx.WithTimeout(c, cl.timeout)
	defer cancel()

	url := cl.baseURL + path
	if len(o.Query) > 0 {
		url += "?" + o.Query.Encode()
	}

	req, err := http.NewRequestWithContext(c, method, url, body)
	if err != nil {
		c.WithFields(log.Fields{"url": url, "err": err}).Error("http.NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set(HeaderContentType, contentType)
	}
	if cl.credentials != nil {
		if token, ok := cl.credentials.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	res, err := cl.client.Do(req)
	if err != nil {
		cl.met.BumpSum("err", 1, "method", method, "status", "0")
		c.WithFields(log.Fields{"url": url, "err": err}).Error("client.Do failed")
		// the caller went away, nobody is left to notify
		if errors.Is(err, context.Canceled) {
			return nil, xerrors.Errorf("%s %s: %w", method, path, err)
		}
		cl.notifyError(domain.MsgTimeout)
		return nil, &domain.RequestError{Message: domain.MsgTimeout, Cause: xerrors.Errorf("%s %s: %w", method, path, err)}
	}
	defer res.Body.Close()

	status := strconv.Itoa(res.StatusCode)
	cl.met.BumpHistogram("latency", float64(time.Since(start))/float64(time.Millisecond), "method", method, "status", status)

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		cl.met.BumpSum("err", 1, "method", method, "status", status)
		c.WithFields(log.Fields{"url": url, "err": err}).Error("ioutil.ReadAll failed")
		return nil, xerrors.Errorf("read body of %s %s: %w", method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		cl.met.BumpSum("err", 1, "method", method, "status", status)
		c.WithFields(log.Fields{"url": url, "status": res.StatusCode}).Warn("request failed")
		return nil, cl.fail(c, res.StatusCode, data)
	}

	resp := &Response{}
	if err := json.Unmarshal(data, resp); err != nil {
		cl.met.BumpSum("err", 1, "method", method, "status", status)
		c.WithFields(log.Fields{"url": url, "err": err}).Error("json.Unmarshal failed")
		return nil, &domain.RequestError{Status: res.StatusCode, Message: domain.MsgResponse, Cause: err}
	}

	if !resp.Success {
		c.WithFields(log.Fields{"url": url, "message": resp.Message}).Warn("success is false")
		return resp, &domain.RequestError{Status: res.StatusCode, Message: resp.Message}
	}

	if o.Toast {
		cl.notify(domain.Notification{Level: domain.LevelSuccess, Title: "Success", Message: okMsg})
	}
	return resp, nil
}

// fail reacts to a non-2xx answer the way every view expects: 401 signs
// out, 403 leaves for the forbidden page, the rest only notifies
func (cl *client) fail(c bCtx.Ctx, status int, body []byte) error {
	var msg string
	switch status {
	case http.StatusUnauthorized:
		msg = domain.MsgUnauthenticated
		if cl.credentials != nil {
			cl.credentials.Clear()
		}
		if cl.onUnauthenticated != nil {
			cl.onUnauthenticated(c)
		}
		cl.notifyError(msg)
		cl.navigate(domain.RouteLogin)
	case http.StatusForbidden:
		msg = domain.MsgUnauthorized
		cl.notifyError(msg)
		cl.navigate(domain.RouteForbidden)
	case http.StatusNotFound:
		msg = domain.MsgNotFound
		cl.notifyError(msg)
	case http.StatusInternalServerError:
		msg = domain.MsgResponse
		cl.notifyError(msg)
	default:
		msg = ExtractMessage(body)
		cl.notifyError(msg)
	}
	return &domain.RequestError{Status: status, Message: msg}
}

// ExtractMessage reads the message out of a failed response: the first
// element of an array body, else every value of the "errors" map joined by
// ", ", else the disconnected message
func ExtractMessage(body []byte) string {
	var arr []interface{}
	if err := json.Unmarshal(body, &arr); err == nil && len(arr) > 0 {
		if s := stringify(arr[0]); s != "" {
			return s
		}
	}

	var obj struct {
		Errors map[string]interface{} `json:"errors"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && len(obj.Errors) > 0 {
		fields := make([]string, 0, len(obj.Errors))
		for k := range obj.Errors {
			fields = append(fields, k)
		}
		sort.Strings(fields)

		msgs := []string{}
		for _, f := range fields {
			switch v := obj.Errors[f].(type) {
			case []interface{}:
				for _, e := range v {
					if s := stringify(e); s != "" {
						msgs = append(msgs, s)
					}
				}
			default:
				if s := stringify(v); s != "" {
					msgs = append(msgs, s)
				}
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}

	return domain.MsgTimeout
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func (cl *client) notify(n domain.Notification) {
	if cl.notifier != nil {
		cl.notifier.Notify(n)
	}
}

func (cl *client) notifyError(msg string) {
	cl.notify(domain.Notification{Level: domain.LevelError, Title: "Error", Message: msg})
}

func (cl *client) navigate(route string) {
	if cl.navigator != nil {
		cl.navigator.Navigate(route)
	}
}
