// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/telaflix/telaflix/internal/models"
)

// MockCatalog is a test double for [services.Catalog]
type MockCatalog struct {
	Movies []models.Movie
	Err    error
}

func (m *MockCatalog) Trending(ctx context.Context) ([]models.Movie, error) {
	return m.section()
}

func (m *MockCatalog) Popular(ctx context.Context) ([]models.Movie, error) {
	return m.section()
}

func (m *MockCatalog) NowPlaying(ctx context.Context) ([]models.Movie, error) {
	return m.section()
}

func (m *MockCatalog) Upcoming(ctx context.Context) ([]models.Movie, error) {
	return m.section()
}

func (m *MockCatalog) TopRated(ctx context.Context) ([]models.Movie, error) {
	return m.section()
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.Movie, error) {
	return m.section()
}

func (m *MockCatalog) Name() string { return "mock" }

func (m *MockCatalog) section() ([]models.Movie, error) {
	if m.Err != nil {
		return []models.Movie{}, m.Err
	}
	return m.Movies, nil
}

// MockMailer is a test double for [services.Mailer] that records deliveries
type MockMailer struct {
	Codes   []string
	Updates []string
	Err     error
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Codes = append(m.Codes, code)
	return nil
}

func (m *MockMailer) SendUpdate(ctx context.Context, email, title, message string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updates = append(m.Updates, title)
	return nil
}

// MockAssistant is a test double for [services.Assistant]
type MockAssistant struct {
	Answer string
	Err    error
}

func (m *MockAssistant) Recommend(ctx context.Context, userInput string, catalog []models.Movie, language string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

// MockChannelLister is a test double for [services.ChannelLister]
type MockChannelLister struct {
	Channels []models.Channel
}

func (m *MockChannelLister) FetchM3U(ctx context.Context, url string) []models.Channel {
	return m.Channels
}

func (m *MockChannelLister) FetchAll(ctx context.Context) []models.Channel {
	return m.Channels
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
