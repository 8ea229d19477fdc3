package requesterfake

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
)

var _ apiclient.Requester = (*FakeRequester)(nil)

// Call is one recorded request
type Call struct {
	Method string
	Path   string
	Body   any
}

// FakeRequester records calls and answers them from canned responses keyed
// by "METHOD path". Unknown calls succeed with an empty body.
type FakeRequester struct {
	calls     []Call
	responses map[string]any
	errors    map[string]error
	lock      sync.Mutex
}

func NewFakeRequester() *FakeRequester {
	return &FakeRequester{
		responses: make(map[string]any),
		errors:    make(map[string]error),
	}
}

// Respond registers v as the JSON body returned for method and path
func (f *FakeRequester) Respond(method, path string, v any) *FakeRequester {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses[method+" "+path] = v
	return f
}

// Fail makes method and path return err
func (f *FakeRequester) Fail(method, path string, err error) *FakeRequester {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.errors[method+" "+path] = err
	return f
}

func (f *FakeRequester) Calls() []Call {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Call(nil), f.calls...)
}

// LastCall returns the most recent call, or a zero Call when there is none
func (f *FakeRequester) LastCall() Call {
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.calls) == 0 {
		return Call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *FakeRequester) Get(ctx context.Context, path string, out any, _ ...apiclient.RequestOption) error {
	return f.do(ctx, http.MethodGet, path, nil, out)
}

func (f *FakeRequester) Post(ctx context.Context, path string, body, out any, _ ...apiclient.RequestOption) error {
	return f.do(ctx, http.MethodPost, path, body, out)
}

func (f *FakeRequester) Put(ctx context.Context, path string, body, out any, _ ...apiclient.RequestOption) error {
	return f.do(ctx, http.MethodPut, path, body, out)
}

func (f *FakeRequester) Patch(ctx context.Context, path string, body, out any, _ ...apiclient.RequestOption) error {
	return f.do(ctx, http.MethodPatch, path, body, out)
}

func (f *FakeRequester) Delete(ctx context.Context, path string, out any, _ ...apiclient.RequestOption) error {
	return f.do(ctx, http.MethodDelete, path, nil, out)
}

func (f *FakeRequester) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.lock.Lock()
	f.calls = append(f.calls, Call{Method: method, Path: path, Body: body})
	key := method + " " + path
	err := f.errors[key]
	resp, ok := f.responses[key]
	f.lock.Unlock()

	if err != nil {
		return err
	}
	if !ok || out == nil {
		return nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
