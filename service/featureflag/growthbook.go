package featureflag

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/growthbook/growthbook-golang"

	"github.com/x-xyz/suinsapi/base/backoff"
	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/goroutine"
	"github.com/x-xyz/suinsapi/base/log"
)

const (
	defaultPollInterval = time.Minute
	defaultTimeout      = 10 * time.Second
	minBackoff          = time.Second
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

type GrowthBookCfg struct {
	HttpClient http.Client
	// ApiHost example: https://cdn.growthbook.io
	ApiHost      string
	ClientKey    string
	PollInterval time.Duration
	Timeout      time.Duration
	// Attributes are matched by rule conditions. "id" defaults to a random
	// per-process id used for coverage hashing.
	Attributes map[string]interface{}
}

type features struct {
	Features json.RawMessage `json:"features"`
}

// GrowthBook polls the GrowthBook features endpoint. Flags stay off until the
// first successful fetch.
type GrowthBook struct {
	*registry
	client   http.Client
	url      string
	interval time.Duration
	timeout  time.Duration
	attrs    growthbook.Attributes
}

func NewGrowthBook(cfg *GrowthBookCfg) *GrowthBook {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attrs := growthbook.Attributes{}
	for k, v := range cfg.Attributes {
		attrs[k] = v
	}
	if _, ok := attrs["id"]; !ok {
		attrs["id"] = uuid.New().String()
	}
	return &GrowthBook{
		registry: newRegistry(),
		client:   cfg.HttpClient,
		url:      fmt.Sprintf("%s/api/features/%s", strings.TrimRight(cfg.ApiHost, "/"), cfg.ClientKey),
		interval: interval,
		timeout:  timeout,
		attrs:    attrs,
	}
}

// Start polls until c is done. Failed fetches are retried with exponential
// backoff capped at the poll interval.
func (g *GrowthBook) Start(c ctx.Ctx) chan *goroutine.PanicEvent {
	return goroutine.RecoverableGo(func() {
		g.poll(c)
	})
}

func (g *GrowthBook) poll(c ctx.Ctx) {
	bo := backoff.NewExponential(minBackoff, g.interval)
	for {
		if err := g.Refresh(c); err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"wait": bo.NextDuration,
			}).Warn("failed to refresh feature flags")
			if err := bo.Backoff(c); err != nil {
				return
			}
			continue
		}
		bo.Reset()

		select {
		case <-c.Done():
			return
		case <-time.After(g.interval):
		}
	}
}

// Refresh fetches the features once and notifies listeners of changes.
func (g *GrowthBook) Refresh(c ctx.Ctx) error {
	data, err := g.get(c)
	if err != nil {
		return err
	}

	resp := features{}
	if err := json.Unmarshal(data, &resp); err != nil {
		c.WithField("err", err).Error("json.Unmarshal failed")
		return err
	}

	featureMap := growthbook.ParseFeatureMap(resp.Features)
	gb := growthbook.New(growthbook.NewContext().
		WithFeatures(featureMap).
		WithAttributes(g.attrs))

	values := make(map[string]bool, len(featureMap))
	for key := range featureMap {
		values[key] = gb.Feature(key).On
	}
	if changed := g.registry.replace(values); len(changed) > 0 {
		c.WithField("flags", changed).Info("feature flags changed")
	}
	return nil
}

func (g *GrowthBook) get(c ctx.Ctx) ([]byte, error) {
	c, cancel := ctx.WithTimeout(c, g.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(c, http.MethodGet, g.url, nil)
	if err != nil {
		c.WithFields(log.Fields{
			"url": g.url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		c.WithFields(log.Fields{
			"url": g.url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.WithFields(log.Fields{
			"url":        g.url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.WithFields(log.Fields{
			"url": g.url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
