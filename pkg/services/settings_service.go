package services

import (
	"context"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/crypto"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// SettingsService holds the process-wide UI settings and stored provider keys.
type SettingsService interface {
	// Get returns a copy of the current settings. Keys are not included.
	Get(ctx context.Context) *models.Settings

	// Update applies every non-empty field of the patch and returns the result.
	Update(ctx context.Context, patch *models.SettingsUpdate) *models.Settings

	// APIKey returns the stored key for a provider, or "" if none was set.
	APIKey(provider models.Provider) string
}

type settingsService struct {
	mu       sync.RWMutex
	settings models.Settings
	keys     map[models.Provider]string // sealed
	sealer   *crypto.KeySealer
	logger   *zap.Logger
	now      func() time.Time
}

// NewSettingsService creates a settings store populated with defaults.
// Stored API keys are sealed with sealer; nil uses a per-process key.
func NewSettingsService(sealer *crypto.KeySealer, logger *zap.Logger) SettingsService {
	return newSettingsService(sealer, logger, time.Now)
}

func newSettingsService(sealer *crypto.KeySealer, logger *zap.Logger, now func() time.Time) *settingsService {
	if sealer == nil {
		sealer = crypto.NewEphemeralKeySealer()
	}

	configured := make(map[models.Provider]bool, len(models.AllProviders))
	for _, p := range models.AllProviders {
		configured[p] = false
	}

	created := now()
	return &settingsService{
		settings: models.Settings{
			Theme:               models.DefaultTheme,
			PrimaryColor:        models.DefaultPrimaryColor,
			SecondaryColor:      models.DefaultSecondaryColor,
			ProvidersConfigured: configured,
			CreatedAt:           created,
			UpdatedAt:           created,
		},
		keys:   make(map[models.Provider]string),
		sealer: sealer,
		logger: logger.Named("settings"),
		now:    now,
	}
}

func (s *settingsService) Get(ctx context.Context) *models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *settingsService) Update(ctx context.Context, patch *models.SettingsUpdate) *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch != nil {
		for provider, key := range patch.APIKeys() {
			sealed, err := s.sealer.Seal(key)
			if err != nil {
				s.logger.Error("Failed to seal API key", zap.String("provider", string(provider)), zap.Error(err))
				continue
			}
			s.keys[provider] = sealed
			s.settings.ProvidersConfigured[provider] = true
			s.logger.Info("Provider API key updated",
				zap.String("provider", string(provider)),
				zap.String("key", models.MaskedAPIKey(key)))
		}
		if patch.Theme != "" {
			s.settings.Theme = patch.Theme
		}
		if patch.PrimaryColor != "" {
			s.settings.PrimaryColor = patch.PrimaryColor
		}
		if patch.SecondaryColor != "" {
			s.settings.SecondaryColor = patch.SecondaryColor
		}
	}
	s.settings.UpdatedAt = s.now()

	return s.snapshot()
}

func (s *settingsService) APIKey(provider models.Provider) string {
	s.mu.RLock()
	sealed := s.keys[provider]
	s.mu.RUnlock()

	key, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Error("Failed to open stored API key", zap.String("provider", string(provider)), zap.Error(err))
		return ""
	}
	return key
}

// snapshot copies the settings. Caller must hold the lock.
func (s *settingsService) snapshot() *models.Settings {
	out := s.settings
	out.ProvidersConfigured = maps.Clone(s.settings.ProvidersConfigured)
	return &out
}

var _ SettingsService = (*settingsService)(nil)
