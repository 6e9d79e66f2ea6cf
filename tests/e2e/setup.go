//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cart-engine/cmd/bootstrap"
	"cart-engine/cmd/bootstrap/components"
	"cart-engine/internal/handler/middleware"
	"cart-engine/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// StagingStub は外部ステージングエンドポイントのローカル代役。
// 受信したリクエストを記録し、固定のリダイレクト先を返す。
type StagingStub struct {
	mu          sync.Mutex
	server      *httptest.Server
	redirectURL string
	failNext    int
	requests    []StagingStubRequest
}

type StagingStubRequest struct {
	IdempotencyKey string
	ClientName     string `json:"client_name"`
	TotalAmount    int64  `json:"total_amount"`
	Currency       string `json:"currency"`
	Products       []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		UnitPrice int64  `json:"unit_price"`
	} `json:"products"`
}

func newStagingStub() *StagingStub {
	stub := &StagingStub{redirectURL: "https://wa.me/2348000000000?text=order"}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req StagingStubRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")

		stub.mu.Lock()
		stub.requests = append(stub.requests, req)
		fail := stub.failNext > 0
		if fail {
			stub.failNext--
		}
		redirect := stub.redirectURL
		stub.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"redirect_url": redirect})
	}))
	return stub
}

func (s *StagingStub) URL() string { return s.server.URL }

func (s *StagingStub) RedirectURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirectURL
}

// FailNext は次の n リクエストを 503 で失敗させる
func (s *StagingStub) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

func (s *StagingStub) Requests() []StagingStubRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StagingStubRequest(nil), s.requests...)
}

func (s *StagingStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
	s.failNext = 0
}

// ------------------------------------------------------------
// 各テストプロセス用にセットアップ
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*redis.Client, *gin.Engine, config.Config, *StagingStub) {
	redisInfo := startContainers(t)

	stub := newStagingStub()
	t.Cleanup(stub.server.Close)

	cfg := createTestConfig(redisInfo, stub.URL())

	router, app := buildE2EApp(cfg)
	require.NotNil(t, router, "Routerのセットアップに失敗")

	// Register cleanup for the fx app
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	t.Cleanup(func() { _ = client.Close() })

	slog.Info("E2E環境の準備が完了しました",
		"redis_host", redisInfo.Host,
		"redis_port", redisInfo.Port.Port())

	return client, router, cfg, stub
}

// ------------------------------------------------------------
// コンテナ起動関数
// ------------------------------------------------------------
func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)

	redisInfo, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "Redisコンテナ情報の取得に失敗")

	return redisInfo
}

func createTestConfig(redisInfo ContainerInfo, stagingEndpoint string) config.Config {
	cfg := config.NewTestConfig()
	cfg.Redis.Addr = fmt.Sprintf("%s:%s", redisInfo.Host, redisInfo.Port.Port())
	cfg.Staging.Endpoint = stagingEndpoint
	return cfg
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// Returns router and fx.App for proper lifecycle management
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			func(cfg config.Config) *slog.Logger {
				return middleware.NewLogger(cfg.Log).GetSlogLogger()
			},
		),
		bootstrap.RedisModule,
		bootstrap.SessionModule,
		components.StoreModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if router == nil {
		panic("fxアプリケーションの起動に失敗しました")
	}

	return router, app
}

// ------------------------------------------------------------
// コンテナ起動の共通関数
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// ------------------------------------------------------------
// Redisコンテナを一度だけ起動／再利用
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd: []string{
				"redis-server",
				"--save", "", // 永続化無効
				"--appendonly", "no",
			},
			WaitingFor: wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
			Name:       "redis-e2e",
			Labels:     map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "Redisコンテナの起動に失敗")

		// コンテナの手動クリーンアップを登録 (RYUK無効時用)
		t.Cleanup(func() {
			if redisTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := redisTestContainer.Terminate(ctx); err != nil {
					slog.Warn("Redisコンテナの終了に失敗しました", "error", err.Error())
				}
			}
		})
	})
}

// ------------------------------------------------------------
// コンテナ関連の共通ユーティリティ関数
// ------------------------------------------------------------
func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	Redis   *redis.Client // 各テストで使う Redis 接続
	Config  config.Config
	Staging *StagingStub
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	client, router, cfg, stub := setupE2EEnvironment(t)
	s.Redis = client
	s.Router = router
	s.Config = cfg
	s.Staging = stub
	require.NotNil(t, client, "Redisのセットアップに失敗")
	require.NotEmpty(t, s.Config, "Configの取得に失敗")
	require.NotNil(t, s.Router, "Routerのセットアップに失敗")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	// セッション毎にキーが分かれるため FLUSHDB で十分
	err := s.Redis.FlushDB(context.Background()).Err()
	require.NoError(s.T(), err, "Failed to reset redis state")
	s.Staging.Reset()
}
