package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var _ http.CookieJar = (*FileJar)(nil)

// FileJar is a cookie jar persisted as JSON, so a refresh cookie set at login
// is still sent by later processes. Every change rewrites the file through a
// temporary file and a rename.
type FileJar struct {
	path    string
	inner   *cookiejar.Jar
	cookies map[string]storedCookie // domain|path|name
	nowTime func() time.Time
	lock    sync.RWMutex
}

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	HostOnly bool      `json:"hostOnly,omitempty"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

func (c storedCookie) key() string {
	return c.Domain + "|" + c.Path + "|" + c.Name
}

func (c storedCookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

// NewFileJar loads path if it exists. A missing file is an empty jar.
func NewFileJar(path string) (*FileJar, error) {
	j := &FileJar{path: path, cookies: make(map[string]storedCookie), nowTime: time.Now}
	if err := j.reset(); err != nil {
		return nil, err
	}
	if err := j.load(); err != nil {
		return nil, fmt.Errorf("session.NewFileJar: %w", err)
	}
	return j, nil
}

func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.lock.RLock()
	defer j.lock.RUnlock()
	return j.inner.Cookies(u)
}

// SetCookies stores cookies from a response to u. Persisting is best effort:
// a failed write leaves the in-process jar updated.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.lock.Lock()
	defer j.lock.Unlock()

	j.inner.SetCookies(u, cookies)
	now := j.nowTime()
	for _, c := range cookies {
		sc := j.record(u, c, now)
		if sc.expired(now) {
			delete(j.cookies, sc.key())
			continue
		}
		j.cookies[sc.key()] = sc
	}
	_ = j.save()
}

// Clear forgets every cookie and removes the file
func (j *FileJar) Clear() error {
	j.lock.Lock()
	defer j.lock.Unlock()
	if err := j.reset(); err != nil {
		return err
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cookie file: %w", err)
	}
	return nil
}

func (j *FileJar) reset() error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.inner = inner
	j.cookies = make(map[string]storedCookie)
	return nil
}

// record normalises c the way the jar scopes it: host-only cookies take the
// request host and a missing path defaults to the request directory.
func (j *FileJar) record(u *url.URL, c *http.Cookie, now time.Time) storedCookie {
	sc := storedCookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   strings.TrimPrefix(strings.ToLower(c.Domain), "."),
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	if sc.Domain == "" {
		sc.Domain = u.Hostname()
		sc.HostOnly = true
	}
	if sc.Path == "" || !strings.HasPrefix(sc.Path, "/") {
		sc.Path = defaultCookiePath(u.Path)
	}
	switch {
	case c.MaxAge < 0:
		sc.Expires = now
	case c.MaxAge > 0:
		sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	return sc
}

func defaultCookiePath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	dir := path.Dir(p)
	if dir == "." {
		return "/"
	}
	return dir
}

func (j *FileJar) load() error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	now := j.nowTime()
	for _, sc := range stored {
		if sc.expired(now) {
			continue
		}
		scheme := "http"
		if sc.Secure {
			scheme = "https"
		}
		c := &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
		}
		if !sc.HostOnly {
			c.Domain = sc.Domain
		}
		j.inner.SetCookies(&url.URL{Scheme: scheme, Host: sc.Domain, Path: sc.Path}, []*http.Cookie{c})
		j.cookies[sc.key()] = sc
	}
	return nil
}

// save must be called with the write lock held
func (j *FileJar) save() error {
	stored := make([]storedCookie, 0, len(j.cookies))
	for _, sc := range j.cookies {
		stored = append(stored, sc)
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("failed to create cookie directory: %w", err)
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	tmp := j.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return os.Rename(tmp, j.path)
}
