// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Redis are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"reelpress/internal/ai"
	"reelpress/internal/cache"
	"reelpress/internal/database"
	"reelpress/internal/mail"
	"reelpress/internal/render"
	"reelpress/internal/session"
	"reelpress/internal/store"
)

// mockChatProvider implements ai.Provider for handler tests.
type mockChatProvider struct {
	chunks []string
	err    error
}

func (m *mockChatProvider) Name() string { return "mock" }

func (m *mockChatProvider) Stream(_ context.Context, _ string, _ []ai.Message, onDelta func(string) error) error {
	for _, c := range m.chunks {
		if err := onDelta(c); err != nil {
			return err
		}
	}
	return m.err
}

// recordingMailer implements mail.Sender and records every enquiry.
type recordingMailer struct {
	contacts []mail.ContactEnquiry
	bookings []mail.BookingEnquiry
	err      error
}

func (m *recordingMailer) SendContact(e mail.ContactEnquiry) error {
	m.contacts = append(m.contacts, e)
	return m.err
}

func (m *recordingMailer) SendBooking(e mail.BookingEnquiry) error {
	m.bookings = append(m.bookings, e)
	return m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "reelpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "reelpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedisClient returns a Redis client for handler tests on DB 15.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*", "order:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB               *sql.DB
	Redis            *redis.Client
	Renderer         *render.Renderer
	Sessions         *session.Store
	BlogStore        *store.BlogStore
	AuthorStore      *store.AuthorStore
	TeamStore        *store.TeamStore
	GalleryStore     *store.GalleryStore
	TestimonialStore *store.TestimonialStore
	OrderStore       *cache.OrderStore
	PageCache        *cache.PageCache
	Mailer           *recordingMailer
	Admin            *Admin
	Auth             *Auth
	Public           *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Storage is nil, so object deletes become no-ops.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rc := testRedisClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		DB:               db,
		Redis:            rc,
		Renderer:         renderer,
		Sessions:         session.NewStore(rc, false),
		BlogStore:        store.NewBlogStore(db),
		AuthorStore:      store.NewAuthorStore(db),
		TeamStore:        store.NewTeamStore(db),
		GalleryStore:     store.NewGalleryStore(db),
		TestimonialStore: store.NewTestimonialStore(db),
		OrderStore:       cache.NewOrderStore(rc),
		PageCache:        cache.NewPageCache(rc, 1*time.Minute),
		Mailer:           &recordingMailer{},
	}

	env.Admin = NewAdmin(
		env.BlogStore, env.AuthorStore, env.TeamStore, env.GalleryStore,
		env.TestimonialStore, nil, env.OrderStore, env.PageCache,
	)
	env.Auth = NewAuth(env.Sessions, store.NewUserStore(db))
	env.Public = NewPublic(
		renderer, env.BlogStore, env.AuthorStore, env.TeamStore,
		env.GalleryStore, env.TestimonialStore, env.OrderStore,
		env.PageCache, false,
	)

	return env
}

// doJSON performs a request against a handler and decodes the envelope.
func doJSON(t *testing.T, handler http.HandlerFunc, r *http.Request) (int, envelope) {
	t.Helper()

	rr := httptest.NewRecorder()
	handler(rr, r)

	body, err := io.ReadAll(rr.Result().Body)
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}

	var env envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatalf("response is not an envelope: %v\n%s", err, body)
		}
	}
	return rr.Code, env
}
