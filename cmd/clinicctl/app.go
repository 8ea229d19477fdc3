package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	"github.com/jrsteele09/clinic-admin-client/auth"
	"github.com/jrsteele09/clinic-admin-client/customers"
	"github.com/jrsteele09/clinic-admin-client/internal/config"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/products"
	"github.com/jrsteele09/clinic-admin-client/session"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// app holds what every command needs. It is built after flag parsing so the
// session profile is known.
type app struct {
	ctx    context.Context
	cfg    config.Config
	logger zerolog.Logger
	out    io.Writer
	errOut io.Writer

	store     *session.Store
	client    *apiclient.Client
	auth      *auth.Service
	customers customers.Repo
	products  products.Repo
	closers   []func() error
}

func (a *app) init(profile string) error {
	repo, err := a.newSessionRepo(profile)
	if err != nil {
		return err
	}
	a.store = session.NewStore(repo)

	jar, err := a.newCookieJar()
	if err != nil {
		return err
	}
	options := []apiclient.Option{
		apiclient.WithHTTPClient(&http.Client{Jar: jar, Timeout: a.cfg.GetRequestTimeout()}),
		apiclient.WithLogger(a.logger),
		apiclient.WithRefreshPath(a.cfg.GetRefreshPath()),
		apiclient.WithRefreshTimeout(a.cfg.GetRefreshTimeout()),
		apiclient.WithReplayLimit(a.cfg.GetReplayConcurrency()),
	}
	if rps := a.cfg.GetRateLimit(); rps > 0 {
		options = append(options, apiclient.WithRateLimiter(rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))))
	}

	if a.client, err = apiclient.New(a.cfg.GetBaseURL(), a.store, options...); err != nil {
		return err
	}
	if a.auth, err = auth.NewService(a.client, a.store, a.cfg,
		auth.WithLogger(a.logger),
		auth.WithCookies(jar),
	); err != nil {
		return err
	}
	a.customers = customers.NewHTTPRepo(a.client)
	a.products = products.NewHTTPRepo(a.client)
	return nil
}

func (a *app) newSessionRepo(profile string) (session.Repo, error) {
	switch backend := a.cfg.GetSessionBackend(); backend {
	case config.SessionBackendMemory:
		return session.NewMemoryRepo(), nil
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: a.cfg.GetRedisAddr()})
		a.closers = append(a.closers, client.Close)
		return session.NewRedisRepo(client, a.cfg.GetRedisKeyPrefix()+profile), nil
	case config.SessionBackendFile:
		return session.NewFileRepo(a.cfg.GetSessionFile())
	default:
		return nil, fmt.Errorf("unknown session backend %q", backend)
	}
}

// cookieJar is an http.CookieJar that Logout can empty
type cookieJar interface {
	http.CookieJar
	auth.CookieClearer
}

// memoryJar keeps cookies for the life of the process only
type memoryJar struct {
	jar  *cookiejar.Jar
	lock sync.RWMutex
}

func newMemoryJar() (*memoryJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &memoryJar{jar: jar}, nil
}

func (j *memoryJar) Cookies(u *url.URL) []*http.Cookie {
	j.lock.RLock()
	defer j.lock.RUnlock()
	return j.jar.Cookies(u)
}

func (j *memoryJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.lock.RLock()
	defer j.lock.RUnlock()
	j.jar.SetCookies(u, cookies)
}

func (j *memoryJar) Clear() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.lock.Lock()
	j.jar = jar
	j.lock.Unlock()
	return nil
}

// newCookieJar persists the refresh cookie unless sessions are in memory,
// so a later run can still refresh an expired token.
func (a *app) newCookieJar() (cookieJar, error) {
	if a.cfg.GetSessionBackend() == config.SessionBackendMemory {
		return newMemoryJar()
	}
	return session.NewFileJar(a.cfg.GetCookieFile())
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return ierrors.Join(errs...)
}
