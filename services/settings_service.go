package services

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"lrbooking/apperr"
	"lrbooking/formatter"
	"lrbooking/logger"
	"lrbooking/models"
	"lrbooking/repository"
)

const maxLogoBytes = 2 << 20

// SettingsService stores the company branding and resolves its logo.
type SettingsService struct {
	Repo       repository.SettingsRepository
	Logger     *logger.Logger
	HTTPClient *http.Client
	Now        func() time.Time

	validate *validator.Validate
}

func NewSettingsService(repo repository.SettingsRepository, log *logger.Logger) *SettingsService {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsService{
		Repo:       repo,
		Logger:     log.WithComponent("settings"),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Now:        time.Now,
		validate:   newValidator(),
	}
}

func (s *SettingsService) Save(ctx context.Context, in models.CompanySettings) (*models.CompanySettings, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	if err := s.validate.Struct(&in); err != nil {
		return nil, validationError(err)
	}
	in.UpdatedAt = s.Now().UTC()
	if err := s.Repo.SaveSettings(ctx, &in); err != nil {
		return nil, apperr.TransientIO("save settings", err)
	}
	logger.FromContext(ctx, s.Logger).Infow("settings saved", "company", in.CompanyName)
	return &in, nil
}

// Get returns the saved settings, or empty settings when none exist.
func (s *SettingsService) Get(ctx context.Context) (*models.CompanySettings, error) {
	out, err := s.Repo.GetSettings(ctx)
	if err != nil {
		return nil, apperr.TransientIO("load settings", err)
	}
	if out == nil {
		out = &models.CompanySettings{}
	}
	return out, nil
}

// Logo returns the company logo as a data URI. Any failure to fetch it
// yields the embedded default logo.
func (s *SettingsService) Logo(ctx context.Context, settings *models.CompanySettings) string {
	if settings == nil || settings.LogoURL == "" {
		return formatter.DefaultLogo()
	}
	if strings.HasPrefix(settings.LogoURL, "data:image/") {
		return settings.LogoURL
	}

	log := logger.FromContext(ctx, s.Logger)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, settings.LogoURL, nil)
	if err != nil {
		log.Warnw("logo url invalid, using default", "url", settings.LogoURL, "error", err)
		return formatter.DefaultLogo()
	}
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		log.Warnw("logo fetch failed, using default", "url", settings.LogoURL, "error", err)
		return formatter.DefaultLogo()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	contentType := resp.Header.Get("Content-Type")
	if err != nil || resp.StatusCode >= 400 || len(data) == 0 {
		log.Warnw("logo fetch failed, using default", "url", settings.LogoURL, "status", resp.StatusCode)
		return formatter.DefaultLogo()
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
		if !strings.HasPrefix(contentType, "image/") {
			log.Warnw("logo is not an image, using default", "url", settings.LogoURL, "contentType", contentType)
			return formatter.DefaultLogo()
		}
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Branding resolves the printable company identity used by every document.
func (s *SettingsService) Branding(ctx context.Context) (formatter.Branding, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return formatter.Branding{}, err
	}
	return formatter.BrandingFrom(settings, s.Logo(ctx, settings)), nil
}
