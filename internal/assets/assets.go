// Package assets loads the table texture, font and audio cue from local
// paths or http(s) URLs. Loads run on goroutines; results are drained on the
// main thread.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/Faultbox/birthday-cake/internal/engine/texture"
	"github.com/Faultbox/birthday-cake/internal/engine/ui2d"
	"github.com/Faultbox/birthday-cake/internal/logger"
)

// Kind identifies what a load produces.
type Kind int

const (
	// Texture decodes to an RGBA image.
	Texture Kind = iota
	// Font parses to a font face.
	Font
	// Audio stays as raw bytes for the audio manager.
	Audio
)

func (k Kind) String() string {
	switch k {
	case Texture:
		return "texture"
	case Font:
		return "font"
	case Audio:
		return "audio"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FontSize is the point size TTF faces are loaded at.
const FontSize = 32

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 30 * time.Second

// MaxRemoteSize caps the body of a remote fetch. A table texture, a font or
// a short cue fits well within it.
const MaxRemoteSize = 64 << 20

// ErrTooLarge is returned for remote assets over the size cap.
var ErrTooLarge = errors.New("asset exceeds size limit")

// Result is a finished load. Exactly one of Image, Face and Data is set
// when Err is nil.
type Result struct {
	Kind   Kind
	Source string
	Image  *image.RGBA
	Face   font.Face
	Data   []byte
	Err    error
}

// Manager fetches assets and caches their bytes by source.
type Manager struct {
	client  *http.Client
	cache   *Cache
	results chan Result
	pending atomic.Int32
	wg      sync.WaitGroup
	log     *zap.Logger
	limit   int64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager creates a new asset manager. A nil client uses one with
// DefaultTimeout.
func NewManager(client *http.Client) *Manager {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		client:  client,
		cache:   NewCache(),
		results: make(chan Result, 8),
		log:     logger.Named("assets"),
		limit:   MaxRemoteSize,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Load returns the bytes at src, a file path or http(s) URL.
func (m *Manager) Load(ctx context.Context, src string) ([]byte, error) {
	if data, ok := m.cache.Get(src); ok {
		return data, nil
	}

	var data []byte
	var err error
	if isRemote(src) {
		data, err = m.fetch(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", src, err)
	}

	m.cache.Set(src, data)
	return data, nil
}

func (m *Manager) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, m.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > m.limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, m.limit)
	}
	return data, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Request starts loading src in the background. The result arrives via
// Poll. Empty sources are ignored.
func (m *Manager) Request(kind Kind, src string) {
	if src == "" {
		return
	}
	m.pending.Add(1)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		res := m.resolve(m.ctx, kind, src)
		select {
		case m.results <- res:
		case <-m.ctx.Done():
			m.pending.Add(-1)
		}
	}()
	m.log.Debug("asset requested", zap.Stringer("kind", kind), zap.String("source", src))
}

// resolve loads and decodes one asset.
func (m *Manager) resolve(ctx context.Context, kind Kind, src string) Result {
	res := Result{Kind: kind, Source: src}
	data, err := m.Load(ctx, src)
	if err != nil {
		res.Err = err
		return res
	}
	switch kind {
	case Texture:
		res.Image, res.Err = texture.Decode(data)
	case Font:
		res.Face, res.Err = ui2d.LoadFace(data, FontSize)
	default:
		res.Data = data
	}
	return res
}

// Poll returns every finished load without blocking.
func (m *Manager) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-m.results:
			m.pending.Add(-1)
			out = append(out, r)
		default:
			return out
		}
	}
}

// Pending returns the number of loads not yet returned by Poll.
func (m *Manager) Pending() int {
	return int(m.pending.Load())
}

// Cache returns the byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close abandons outstanding loads and clears the cache.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
