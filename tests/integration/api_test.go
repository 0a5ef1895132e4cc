package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	"github.com/osokin/shortly/internal/config"
	"github.com/osokin/shortly/internal/service"
	"github.com/osokin/shortly/tests"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	api "github.com/osokin/shortly/internal/api/http"
	repository "github.com/osokin/shortly/internal/database/postgres"
	"github.com/osokin/shortly/internal/database"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const testBaseURL = "http://sho.rt"

type APITestSuite struct {
	suite.Suite
	pgCont  testcontainers.Container
	cfg     config.Postgres
	db      *sqlx.DB
	urlRepo *repository.URLRepository
	urlSvc  *service.URLService
	server  *httptest.Server
	e       *httpexpect.Expect
}

func (suite *APITestSuite) SetupSuite() {
	ctx := context.Background()

	pgUser := "test"
	pgPassword := "test"
	pgDB := "shortly"

	var err error
	suite.pgCont, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDB,
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForListeningPort("5432/tcp"),
		},
		Started: true,
	})
	if err != nil {
		suite.T().Fatalf("Failed to start postgres container: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := suite.pgCont.Terminate(ctx); err != nil {
			suite.T().Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	pgHost, err := suite.pgCont.Host(ctx)
	if err != nil {
		suite.T().Fatalf("Failed to get postgres container host: %v", err)
	}

	pgPort, err := suite.pgCont.MappedPort(ctx, "5432")
	if err != nil {
		suite.T().Fatalf("Failed to get postgres container port: %v", err)
	}

	suite.cfg = config.Postgres{
		User:     pgUser,
		Password: pgPassword,
		Host:     pgHost,
		Port:     pgPort.Int(),
		DB:       pgDB,
		SSLMode:  "disable",
	}

	suite.db, err = sqlx.Connect("pgx", suite.cfg.DSN())
	if err != nil {
		suite.T().Fatalf("Failed to connect to database: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := suite.db.Close(); err != nil {
			suite.T().Fatalf("Failed to close database: %v", err)
		}
	})

	root, err := tests.FindProjectRoot()
	if err != nil {
		suite.T().Fatalf("Failed to get project root: %v", err)
	}

	migrationsPath := "file://" + filepath.Join(root, "migrations")

	m, err := migrate.New(migrationsPath, suite.cfg.DSN())
	if err != nil {
		suite.T().Fatalf("Failed to initialize migrations: %v", err)
	}

	if err := m.Up(); err != nil {
		suite.T().Fatalf("Failed to run migrations: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := m.Down(); err != nil {
			suite.T().Fatalf("Failed to rollback migrations: %v", err)
		}
	})

	suite.urlRepo = repository.NewURLRepository(suite.db)
	suite.urlSvc = service.NewURLService(suite.urlRepo, service.DefaultShortCodeLength, service.DefaultMaxCodeAttempts)

	logger := httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	router := api.NewRouter(logger, suite.urlSvc, testBaseURL)

	suite.server = httptest.NewServer(router)
	suite.T().Cleanup(suite.server.Close)

	suite.e = httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  suite.server.URL,
		Reporter: httpexpect.NewAssertReporter(suite.T()),
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

func (suite *APITestSuite) TearDownTest() {
	if _, err := suite.db.Exec(`TRUNCATE urls`); err != nil {
		suite.T().Fatalf("Failed to truncate urls table: %v", err)
	}
}

func (suite *APITestSuite) shorten(originalURL string, wantStatus int) string {
	resp := suite.e.POST("/shorten").
		WithJSON(map[string]string{"url": originalURL}).
		Expect().
		Status(wantStatus).
		JSON().Object()

	resp.HasValue("original_url", originalURL)

	return path.Base(resp.Value("short_url").String().Raw())
}

func (suite *APITestSuite) TestShortenAndRedirectRoundTrip() {
	const originalURL = "https://example.com/path?q=1"

	shortCode := suite.shorten(originalURL, http.StatusCreated)

	suite.e.GET("/" + shortCode).
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual(originalURL)

	suite.e.GET("/" + shortCode + "/stats").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		HasValue("short_code", shortCode).
		HasValue("original_url", originalURL).
		HasValue("clicks", 1)
}

func (suite *APITestSuite) TestShortenIsIdempotent() {
	const originalURL = "https://example.com/idempotent"

	first := suite.e.POST("/shorten").
		WithJSON(map[string]string{"url": originalURL}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object()
	first.HasValue("existing", false)

	second := suite.e.POST("/shorten").
		WithJSON(map[string]string{"url": originalURL}).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	second.HasValue("existing", true)

	suite.Equal(
		first.Value("short_url").String().Raw(),
		second.Value("short_url").String().Raw(),
	)
}

func (suite *APITestSuite) TestTrailingSlashURLsAreDistinct() {
	codeWithout := suite.shorten("https://example.com/page", http.StatusCreated)
	codeWith := suite.shorten("https://example.com/page/", http.StatusCreated)

	suite.NotEqual(codeWithout, codeWith)
}

func (suite *APITestSuite) TestConcurrentRedirectsLoseNoClicks() {
	const (
		originalURL  = "https://example.com/concurrent"
		numRedirects = 50
	)

	shortCode := suite.shorten(originalURL, http.StatusCreated)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	g := new(errgroup.Group)
	for i := 0; i < numRedirects; i++ {
		g.Go(func() error {
			resp, err := client.Get(suite.server.URL + "/" + shortCode)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusFound {
				return fmt.Errorf("unexpected status: %d", resp.StatusCode)
			}

			return nil
		})
	}
	suite.NoError(g.Wait())

	suite.e.GET("/" + shortCode + "/stats").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		HasValue("clicks", numRedirects)
}

func (suite *APITestSuite) TestUnknownShortCode() {
	suite.e.GET("/zzzzzz").
		Expect().
		Status(http.StatusNotFound)

	suite.e.GET("/zzzzzz/stats").
		Expect().
		Status(http.StatusNotFound)

	var count int
	err := suite.db.Get(&count, `SELECT count(*) FROM urls`)
	suite.NoError(err)
	suite.Zero(count)
}

func (suite *APITestSuite) TestValidationBoundary() {
	for _, rawURL := range []string{"ftp://example.com", "not a url", ""} {
		suite.e.POST("/shorten").
			WithJSON(map[string]string{"url": rawURL}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			ContainsKey("error")
	}

	for _, rawURL := range []string{"http://localhost:8080/x", "http://192.168.0.1/"} {
		suite.e.POST("/shorten").
			WithJSON(map[string]string{"url": rawURL}).
			Expect().
			Status(http.StatusCreated)
	}
}

func (suite *APITestSuite) TestShortCodeUniquenessIsStoreEnforced() {
	ctx := context.Background()

	_, err := suite.urlRepo.Create(ctx, "dupcod", "https://example.com/first")
	suite.NoError(err)

	url, err := suite.urlRepo.Create(ctx, "dupcod", "https://example.com/second")
	suite.Error(err)
	suite.ErrorIs(err, database.ErrShortCodeExists)
	suite.Nil(url)
}

func TestAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(APITestSuite))
}
