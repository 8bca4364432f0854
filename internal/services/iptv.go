// IPTV playlist implementation of [ChannelLister]
package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
)

const (
	proxyAttemptTimeout  = 8 * time.Second
	directAttemptTimeout = 5 * time.Second
	maxM3ULineSize       = 1 << 20 // 1 MiB per line

	channelNameFallback = "Canal Desconhecido"
	channelLogoFallback = "https://cdn-icons-png.flaticon.com/512/716/716429.png"
	channelGroupDefault = "Geral"
)

// IPTVService implements [ChannelLister] over public M3U playlists.
//
// Public lists are frequently unreachable from restrictive networks, so each
// source is tried through every configured proxy template before a direct
// request. Every attempt carries its own timeout so one hung path cannot
// starve the fallbacks.
type IPTVService struct {
	sources    []string
	proxies    []string
	pinned     []models.Channel
	httpClient *http.Client
	logger     *log.Logger
}

// NewIPTVService creates a channel lister from configuration. The logger may
// be nil.
func NewIPTVService(cfg shared.IPTVConfig, logger *log.Logger) *IPTVService {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pinned := make([]models.Channel, 0, len(cfg.Pinned))
	for _, p := range cfg.Pinned {
		pinned = append(pinned, models.Channel{
			ID:    p.ID,
			Name:  p.Name,
			Logo:  p.Logo,
			URL:   p.URL,
			Group: p.Group,
		})
	}

	return &IPTVService{
		sources:    cfg.Sources,
		proxies:    cfg.Proxies,
		pinned:     pinned,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// FetchM3U loads and parses one playlist URL, trying each proxy and then the
// direct URL. Returns an empty slice when every path fails.
func (s *IPTVService) FetchM3U(ctx context.Context, m3uURL string) []models.Channel {
	for _, proxy := range s.proxies {
		proxied := fmt.Sprintf(proxy, url.QueryEscape(m3uURL))
		channels, err := s.fetchOnce(ctx, proxied, proxyAttemptTimeout)
		if err != nil {
			s.logger.Debugf("proxy attempt failed for %s: %v", m3uURL, err)
			continue
		}
		s.logger.Infof("playlist loaded via proxy: %s (%d channels)", m3uURL, len(channels))
		return channels
	}

	channels, err := s.fetchOnce(ctx, m3uURL, directAttemptTimeout)
	if err != nil {
		s.logger.Warnf("playlist unreachable on every path: %s", m3uURL)
		return []models.Channel{}
	}
	return channels
}

// fetchOnce performs a single attempt with its own timeout. A body that does
// not look like an M3U playlist, or parses to zero channels, counts as a
// failure so the caller moves on to the next path.
func (s *IPTVService) fetchOnce(ctx context.Context, fetchURL string, timeout time.Duration) ([]models.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	text := string(body)
	if !strings.Contains(text, "#EXTM3U") {
		return nil, fmt.Errorf("%w: response is not an M3U playlist", shared.ErrAPIRequest)
	}

	channels := ParseM3U(text)
	if len(channels) == 0 {
		return nil, shared.ErrPlaylistEmpty
	}
	return channels, nil
}

// FetchAll merges every configured source plus pinned channels. Sources are
// fetched concurrently and resolve independently; channels are de-duplicated
// by stream URL with pinned entries taking precedence.
func (s *IPTVService) FetchAll(ctx context.Context) []models.Channel {
	results := make([][]models.Channel, len(s.sources))
	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			results[i] = s.FetchM3U(ctx, src)
		}(i, src)
	}
	wg.Wait()

	seen := make(map[string]bool)
	merged := make([]models.Channel, 0, len(s.pinned))
	for _, ch := range s.pinned {
		seen[ch.URL] = true
		merged = append(merged, ch)
	}
	for _, list := range results {
		for _, ch := range list {
			if seen[ch.URL] {
				continue
			}
			seen[ch.URL] = true
			merged = append(merged, ch)
		}
	}
	return merged
}

// ParseM3U extracts channels from M3U playlist text. Each #EXTINF line
// contributes name (after the last comma, so quoted attribute values do not
// leak in), tvg-logo and group-title attributes; the following URL line
// completes the channel. Entries without a URL are dropped.
func ParseM3U(content string) []models.Channel {
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(nil, maxM3ULineSize)

	var channels []models.Channel
	var pending *models.Channel

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF:") {
			name := channelNameFallback
			if i := strings.LastIndex(line, ","); i >= 0 && strings.TrimSpace(line[i+1:]) != "" {
				name = strings.TrimSpace(line[i+1:])
			}
			logo := extinfAttr(line, "tvg-logo")
			if logo == "" {
				logo = channelLogoFallback
			}
			group := extinfAttr(line, "group-title")
			if group == "" {
				group = channelGroupDefault
			}
			pending = &models.Channel{Name: name, Logo: logo, Group: group}
			continue
		}

		if pending != nil && strings.HasPrefix(line, "http") {
			pending.URL = line
			pending.ID = channelID(line, pending.Name)
			channels = append(channels, *pending)
			pending = nil
		}
	}

	return channels
}

// extinfAttr pulls a quoted attribute value (e.g. tvg-logo="...") out of an
// #EXTINF line.
func extinfAttr(line, attr string) string {
	prefix := attr + `="`
	i := strings.Index(line, prefix)
	if i < 0 {
		return ""
	}
	rest := line[i+len(prefix):]
	j := strings.Index(rest, `"`)
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// channelID derives a stable identifier from the stream URL and name, so a
// channel keeps its identity across playlist refreshes.
func channelID(streamURL, name string) string {
	var h uint64
	for _, c := range streamURL {
		h = h*31 + uint64(c)
	}
	for _, c := range name {
		h = h*31 + uint64(c)
	}
	return "iptv-" + strconv.FormatUint(h, 36)
}
