package contact

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/packwoodplates/site/pkg/mailer"
)

// MockSender is a mock implementation of mailer.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *mailer.Email) (mailer.Receipt, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(mailer.Receipt), args.Error(1)
}

// recordingSender captures every email it is asked to send.
type recordingSender struct {
	mu     sync.Mutex
	emails []*mailer.Email
	id     string
	err    error
}

func (r *recordingSender) Send(_ context.Context, email *mailer.Email) (mailer.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, email)
	if r.err != nil {
		return mailer.Receipt{}, r.err
	}
	return mailer.Receipt{ID: r.id}, nil
}

func (r *recordingSender) sent() []*mailer.Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*mailer.Email(nil), r.emails...)
}

func testConfig() Config {
	return Config{
		From:          "orders@packwoodplates.com",
		To:            "owner@packwoodplates.com",
		SiteName:      "Packwood Plates",
		SiteHost:      "packwoodplates.com",
		HasCredential: true,
		SendTimeout:   time.Second,
	}
}

func newTestService(sender mailer.Sender, mutate ...func(*Config)) *Service {
	cfg := testConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}
	m := mailer.New(sender, NewRenderer(), mailer.Config{
		DefaultLayout:   InquiryLayout,
		FallbackSubject: "Website inquiry",
	})
	return NewService(m, cfg)
}

func jamie() Submission {
	return Submission{
		Name:    "Jamie Carter",
		Email:   "jamie@example.com",
		Details: "Want a turtle plate",
	}
}
