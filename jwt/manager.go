package jwt

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrEthical07/tokenauth/internal/cache"
)

// DefaultCacheTTL bounds how long a resolved algorithm is reused before the
// settings are read again.
const DefaultCacheTTL = 5 * time.Minute

// Settings is the key material configuration read at each resolution.
type Settings struct {
	Algorithm      string
	Secret         string
	PrivateKeyPath string
	PublicKeyPath  string
}

// ManagerConfig wires a [Manager].
type ManagerConfig struct {
	// Settings is called on every cache miss. Required.
	Settings func() Settings
	// CacheTTL defaults to DefaultCacheTTL.
	CacheTTL time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
	Debug    bool
}

// Manager resolves and caches the active signing algorithm.
type Manager struct {
	settings func() Settings
	logger   *slog.Logger
	debug    bool
	cell     *cache.Refreshing[*Algorithm]
}

// NewManager returns a manager reading key settings through cfg.Settings.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Settings == nil {
		return nil, errors.New("jwt: settings func is required")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	m := &Manager{settings: cfg.Settings, logger: cfg.Logger, debug: cfg.Debug}
	m.cell = cache.NewRefreshing(cfg.CacheTTL, cfg.Now, m.load)
	return m, nil
}

// Resolve returns the cached algorithm, reloading it when the cached entry
// is older than the cache TTL.
func (m *Manager) Resolve() (*Algorithm, error) {
	return m.cell.Get()
}

// Invalidate drops the cached algorithm.
func (m *Manager) Invalidate() {
	m.cell.Invalidate()
	if m.debug {
		m.logger.Debug("jwt algorithm cache invalidated")
	}
}

// Loads reports how many times key material has been resolved.
func (m *Manager) Loads() uint64 {
	return m.cell.Loads()
}

func (m *Manager) load() (*Algorithm, error) {
	s := m.settings()

	name, ok := ParseName(s.Algorithm)
	if !ok {
		m.logger.Warn("unsupported jwt algorithm, falling back to HS256",
			slog.String("configured", strings.TrimSpace(s.Algorithm)))
		name = HS256
	}

	alg, err := resolve(name, s)
	if err != nil {
		return nil, err
	}
	if m.debug {
		m.logger.Debug("jwt algorithm resolved", slog.String("algorithm", string(name)))
	}
	return alg, nil
}

func resolve(name Name, s Settings) (*Algorithm, error) {
	if !name.IsRSA() {
		secret := strings.TrimSpace(s.Secret)
		if secret == "" {
			return nil, fmt.Errorf("%w: jwt.secret is required for %s", ErrKeyMaterial, name)
		}
		return NewHMAC(name, []byte(secret))
	}

	private, err := LoadRSAPrivateKey(s.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	public, err := LoadRSAPublicKey(s.PublicKeyPath)
	if err != nil {
		return nil, err
	}
	return NewRSA(name, private, public)
}
