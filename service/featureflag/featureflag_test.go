package featureflag

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/suinsapi/base/ctx"
)

var (
	mockCtx = ctx.Background()
)

type featureflagSuite struct {
	suite.Suite
}

func TestFeatureflagSuite(t *testing.T) {
	suite.Run(t, new(featureflagSuite))
}

func (s *featureflagSuite) TestStaticDefaultsOff() {
	st := NewStatic(nil)
	s.False(st.IsOn("suins"))
}

func (s *featureflagSuite) TestStaticNotifiesOnFlip() {
	st := NewStatic(map[string]bool{"suins": false})

	got := []bool{}
	unsubscribe := st.Subscribe("suins", func(on bool) {
		got = append(got, on)
		// listeners may read flags
		s.Equal(on, st.IsOn("suins"))
	})

	st.Set("suins", true)
	st.Set("suins", true)
	st.Set("other", true)
	st.Set("suins", false)
	s.Equal([]bool{true, false}, got)

	unsubscribe()
	st.Set("suins", true)
	s.Equal([]bool{true, false}, got)
}

func (s *featureflagSuite) TestConfigReload() {
	v := viper.New()
	v.SetConfigType("yaml")
	s.Require().NoError(v.ReadConfig(bytes.NewBufferString(`
featureFlags:
  flags:
    suins: false
    other: true
`)))

	cf := NewConfig(v)
	s.False(cf.IsOn("suins"))
	s.True(cf.IsOn("other"))

	flips := make(chan bool, 1)
	cf.Subscribe("suins", func(on bool) { flips <- on })

	s.Require().NoError(v.ReadConfig(bytes.NewBufferString(`
featureFlags:
  flags:
    suins: true
`)))
	cf.Reload(mockCtx)

	s.True(<-flips)
	s.True(cf.IsOn("suins"))
	s.True(cf.IsOn("SUINS"))
	s.False(cf.IsOn("other"))
}

func (s *featureflagSuite) TestGrowthBookRules() {
	tests := []struct {
		name  string
		attrs map[string]interface{}
		body  string
		want  bool
	}{
		{
			name: "full coverage rollout",
			body: `{"features":{"suins":{"defaultValue":false,"rules":[{"coverage":1,"force":true,"hashAttribute":"id"}]}}}`,
			want: true,
		},
		{
			name:  "condition matched",
			attrs: map[string]interface{}{"country": "US"},
			body:  `{"features":{"suins":{"defaultValue":false,"rules":[{"condition":{"country":"US"},"force":true}]}}}`,
			want:  true,
		},
		{
			name:  "condition not matched",
			attrs: map[string]interface{}{"country": "TW"},
			body:  `{"features":{"suins":{"defaultValue":false,"rules":[{"condition":{"country":"US"},"force":true}]}}}`,
			want:  false,
		},
		{
			name: "default value",
			body: `{"features":{"suins":{"defaultValue":true}}}`,
			want: true,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gb := NewGrowthBook(&GrowthBookCfg{
				ApiHost:    srv.URL,
				ClientKey:  "k",
				Attributes: tt.attrs,
			})
			s.NoError(gb.Refresh(mockCtx))
			s.Equal(tt.want, gb.IsOn("suins"))
		})
	}
}

func (s *featureflagSuite) TestGrowthBookRefresh() {
	var (
		mu   sync.Mutex
		body = `{"features":{"suins":{"defaultValue":false}}}`
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/api/features/sdk-key", r.URL.Path)
		mu.Lock()
		defer mu.Unlock()
		w.Write([]byte(body))
	}))
	defer srv.Close()

	gb := NewGrowthBook(&GrowthBookCfg{
		HttpClient: http.Client{},
		ApiHost:    srv.URL + "/",
		ClientKey:  "sdk-key",
	})
	s.False(gb.IsOn("suins"))

	s.NoError(gb.Refresh(mockCtx))
	s.False(gb.IsOn("suins"))

	flips := make(chan bool, 1)
	gb.Subscribe("suins", func(on bool) { flips <- on })

	mu.Lock()
	body = `{"features":{"suins":{"defaultValue":false,"rules":[{"force":true}]}}}`
	mu.Unlock()
	s.NoError(gb.Refresh(mockCtx))
	s.True(<-flips)
	s.True(gb.IsOn("suins"))
}

func (s *featureflagSuite) TestGrowthBookBadStatus() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gb := NewGrowthBook(&GrowthBookCfg{ApiHost: srv.URL, ClientKey: "k"})
	s.Equal(ErrStatusCodeNotOk, gb.Refresh(mockCtx))
	s.False(gb.IsOn("suins"))
}

func (s *featureflagSuite) TestGrowthBookPollStopsOnCancel() {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"features":{"suins":{"defaultValue":true}}}`))
	}))
	defer srv.Close()

	gb := NewGrowthBook(&GrowthBookCfg{
		ApiHost:      srv.URL,
		ClientKey:    "k",
		PollInterval: 10 * time.Millisecond,
	})

	c, cancel := ctx.WithCancel(mockCtx)
	done := gb.Start(c)

	s.Eventually(func() bool { return gb.IsOn("suins") }, time.Second, 5*time.Millisecond)
	s.Eventually(func() bool { return atomic.LoadInt32(&hits) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case ev := <-done:
		s.Nil(ev)
	case <-time.After(time.Second):
		s.Fail("poller did not stop")
	}
}
