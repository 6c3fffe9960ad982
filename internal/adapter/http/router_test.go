package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tradesim/walletd/internal/adapter/http/handler"
	apimiddleware "github.com/tradesim/walletd/internal/adapter/http/middleware"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/auth"
	"github.com/tradesim/walletd/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimitRPS = 1
		cfg.RateLimitBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"email":"trader@example.com","name":"Trader","password":"s3cretpass","tier":"free"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users",
		"POST /api/v1/auth/login",
		"GET /api/v1/wallets/{userID}/",
		"GET /api/v1/wallets/{userID}/entries",
		"GET /api/v1/wallets/{userID}/verify",
		"POST /api/v1/wallets/{userID}/entries",
		"POST /api/v1/wallets/{userID}/reset",
		"GET /api/v1/wallets/{userID}/audit",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_UnknownWalletReturnsNotFound(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.WalletHandler = handler.NewWalletHandler(&stubWalletService{
			getErr: domain.ErrAccountNotFound,
		}, nil)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/usr_missing/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown wallet, got %d", rec.Code)
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)

	cfg := RouterConfig{
		WalletHandler: handler.NewWalletHandler(&stubWalletService{}, nil),
		UserHandler:   handler.NewUserHandler(&stubUserService{}, &stubWalletService{}),
		AuthHandler:   handler.NewAuthHandler(&stubUserService{}, jwtManager),
		AuditHandler:  handler.NewAuditHandler(&stubAuditService{}),
		HealthHandler: handler.NewHealthHandler(nil, nil),
		JWTManager:    jwtManager,
		Logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubWalletService struct {
	getErr error
}

func (s *stubWalletService) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &domain.Account{UserID: userID}, nil
}

func (s *stubWalletService) Record(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{UserID: input.UserID}, nil
}

func (s *stubWalletService) Reset(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error) {
	return &domain.Account{UserID: userID, Balance: newBalance}, nil
}

func (s *stubWalletService) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error) {
	return []*domain.LedgerEntry{}, nil
}

func (s *stubWalletService) CountEntries(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (s *stubWalletService) Verify(ctx context.Context, userID string) (*usecase.VerifyResult, error) {
	return &usecase.VerifyResult{UserID: userID, Consistent: true}, nil
}

type stubUserService struct{}

func (stubUserService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "usr_1", Email: input.Email}, nil
}

func (stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (stubUserService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (stubUserService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return &domain.User{ID: "usr_1", Email: input.Email}, nil
}

type stubAuditService struct{}

func (stubAuditService) ListByResource(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]*domain.AuditLog, error) {
	return []*domain.AuditLog{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
