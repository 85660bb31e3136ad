package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/tombowditch/pasters/client"
	"github.com/tombowditch/pasters/internal/server/httpserver"
	"github.com/tombowditch/pasters/internal/store"
)

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

type failingStore struct{}

func (failingStore) Get(string) (string, error)          { return "", errors.New("disk on fire") }
func (failingStore) Create(string, []byte) (bool, error) { return false, errors.New("disk on fire") }

type collidingStore struct{ calls int }

func (s *collidingStore) Get(string) (string, error) { return "", store.ErrNotFound }
func (s *collidingStore) Create(string, []byte) (bool, error) {
	s.calls++
	return false, nil
}

func do(srv *httptest.Server, method, path, body string) (int, string) {
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	Expect(err).NotTo(HaveOccurred())
	resp, err := srv.Client().Do(req)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return resp.StatusCode, string(b)
}

var _ = Describe("Emulator", func() {
	var (
		srv    *httptest.Server
		st     store.Store
		opts   httpserver.Options
		logger *logrus.Logger
		hook   *test.Hook
	)

	BeforeEach(func() {
		st = store.NewMemory()
		logger, hook = test.NewNullLogger()
		opts = httpserver.Options{MaxPayloadSize: 16, Logger: logger}
	})

	JustBeforeEach(func() {
		srv = httptest.NewUnstartedServer(nil)
		opts.BaseURL = "http://" + srv.Listener.Addr().String()
		srv.Config.Handler = httpserver.NewHandler(st, opts)
		srv.Start()
	})

	AfterEach(func() {
		srv.Close()
	})

	Describe("POST /", func() {
		It("stores the body and returns its URL with 201", func() {
			status, body := do(srv, http.MethodPost, "/", "hello")
			Expect(status).To(Equal(http.StatusCreated))
			Expect(body).To(HavePrefix(srv.URL + "/"))

			id := strings.TrimPrefix(body, srv.URL+"/")
			Expect(id).To(HaveLen(client.IDLength))

			stored, err := st.Get(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal("hello"))
			Expect(hook.LastEntry().Message).To(Equal("created paste"))
		})

		It("truncates oversized bodies and answers 206", func() {
			status, body := do(srv, http.MethodPost, "/", strings.Repeat("x", 40))
			Expect(status).To(Equal(http.StatusPartialContent))

			stored, err := st.Get(strings.TrimPrefix(body, srv.URL+"/"))
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(strings.Repeat("x", 16)))
		})

		Context("without a payload limit", func() {
			BeforeEach(func() {
				opts.MaxPayloadSize = 0
			})

			It("falls back to the default limit instead of truncating everything", func() {
				status, body := do(srv, http.MethodPost, "/", strings.Repeat("z", 40))
				Expect(status).To(Equal(http.StatusCreated))

				stored, err := st.Get(strings.TrimPrefix(body, srv.URL+"/"))
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).To(Equal(strings.Repeat("z", 40)))
			})
		})

		It("rejects an empty body", func() {
			status, body := do(srv, http.MethodPost, "/", "")
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("empty body"))
		})

		Context("when rate limited", func() {
			BeforeEach(func() {
				opts.CreateLimiter = denyAll{}
			})

			It("answers 429", func() {
				status, _ := do(srv, http.MethodPost, "/", "hello")
				Expect(status).To(Equal(http.StatusTooManyRequests))
			})
		})

		Context("when the store fails", func() {
			BeforeEach(func() {
				st = failingStore{}
			})

			It("answers 500 and logs the failure", func() {
				status, _ := do(srv, http.MethodPost, "/", "hello")
				Expect(status).To(Equal(http.StatusInternalServerError))
				Expect(hook.LastEntry().Level).To(Equal(logrus.ErrorLevel))
			})
		})

		Context("when every identifier collides", func() {
			var cs *collidingStore

			BeforeEach(func() {
				cs = &collidingStore{}
				st = cs
			})

			It("gives up after a bounded number of attempts", func() {
				status, body := do(srv, http.MethodPost, "/", "hello")
				Expect(status).To(Equal(http.StatusInternalServerError))
				Expect(body).To(Equal("could not generate identifier"))
				Expect(cs.calls).To(Equal(10))
			})
		})
	})

	Describe("GET /:identifier", func() {
		It("returns stored content", func() {
			_, err := st.Create("abc", []byte("content\n"))
			Expect(err).NotTo(HaveOccurred())

			status, body := do(srv, http.MethodGet, "/abc", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(Equal("content\n"))
		})

		It("answers 404 for unknown pastes", func() {
			status, _ := do(srv, http.MethodGet, "/zzz", "")
			Expect(status).To(Equal(http.StatusNotFound))
		})

		Context("when rate limited", func() {
			BeforeEach(func() {
				opts.FetchLimiter = denyAll{}
			})

			It("answers 429", func() {
				status, _ := do(srv, http.MethodGet, "/abc", "")
				Expect(status).To(Equal(http.StatusTooManyRequests))
			})
		})
	})

	Describe("GET /", func() {
		It("describes the service", func() {
			status, body := do(srv, http.MethodGet, "/", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring("paste.rs emulator"))
		})
	})

	Describe("with the paste client", func() {
		var c *client.Client

		JustBeforeEach(func() {
			var err error
			c, err = client.New(client.WithBaseURL(srv.URL), client.WithHTTPClient(srv.Client()))
			Expect(err).NotTo(HaveOccurred())
		})

		It("round-trips content", func() {
			rec, err := c.Create(context.Background(), []byte("Hello world!"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Outcome).To(Equal(client.Created))

			ref, err := c.Resolve(rec.URL)
			Expect(err).NotTo(HaveOccurred())

			content, err := c.Fetch(context.Background(), ref)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("Hello world!"))
		})

		It("reports partial creation with a usable id", func() {
			rec, err := c.Create(context.Background(), []byte(strings.Repeat("y", 100)))
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Outcome).To(Equal(client.PartiallyCreated))
			Expect(rec.ID).NotTo(BeEmpty())

			content, err := c.Fetch(context.Background(), rec.Reference)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(HaveLen(16))
		})

		It("returns a remote error for missing pastes", func() {
			_, err := c.Fetch(context.Background(), client.Reference{ID: "nop"})
			Expect(client.IsRemote(err)).To(BeTrue())
		})
	})
})
