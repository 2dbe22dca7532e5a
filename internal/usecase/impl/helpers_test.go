package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"shophub/config"
	"shophub/internal/domain/service"
	"shophub/internal/infra/kv"

	"github.com/google/uuid"
	"gocloud.dev/blob/memblob"
)

// testLogger discards everything.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testStore opens a fresh in-memory KV store.
func testStore() *kv.Store {
	return kv.NewStore(memblob.OpenBucket(nil))
}

// testConfig returns a config with fast gateways and low bcrypt cost so the
// suite stays quick.
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Auth = &config.AuthConfig{
		CodeTTL:    5 * time.Minute,
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	}
	cfg.Checkout = &config.CheckoutConfig{
		ShippingFee:     5.99,
		TaxRate:         0.08,
		PaymentTimeout:  2 * time.Second,
		DeliveryMinDays: 3,
		DeliveryMaxDays: 7,
	}
	cfg.Gateways = map[string]config.GatewayConfig{}
	for _, name := range []string{"stripe", "paypal", "razorpay", "square"} {
		cfg.Gateways[name] = config.GatewayConfig{
			MinLatency: time.Millisecond,
			MaxLatency: 2 * time.Millisecond,
		}
	}

	return cfg
}

// slowStripeConfig makes the stripe adapter slower than the payment timeout
// used by the timeout test.
func slowStripeConfig() config.GatewayConfig {
	return config.GatewayConfig{
		MinLatency: 500 * time.Millisecond,
		MaxLatency: 600 * time.Millisecond,
	}
}

// fixedSampler pins every gateway outcome.
type fixedSampler struct {
	mu      sync.Mutex
	succeed bool
}

func (s *fixedSampler) Sample(float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.succeed
}

func (s *fixedSampler) set(succeed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.succeed = succeed
}

// recordingNotifier captures sent codes instead of delivering them.
type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{codes: make(map[string]string)}
}

func (n *recordingNotifier) SendCode(_ context.Context, mobile, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.codes[mobile] = code

	return nil
}

func (n *recordingNotifier) lastCode(mobile string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.codes[mobile]
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType)
	}

	return types
}

// stubQRCodeService returns a fixed payload.
type stubQRCodeService struct{}

func (stubQRCodeService) GenerateTrackingQR(string) ([]byte, error) {
	return []byte("png"), nil
}

// stubTokenService issues predictable tokens.
type stubTokenService struct{}

func (stubTokenService) GenerateToken(userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

func (stubTokenService) ValidateToken(string) (*service.Claims, error) {
	return nil, nil
}

func (stubTokenService) GetTokenDuration() time.Duration {
	return time.Hour
}
