package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/models"
)

// countryNames is the closed mapping of known codes to display names.
// Unmapped codes pass through as their raw code.
var countryNames = map[string]string{
	"FR": "France",
	"US": "États-Unis",
	"CA": "Canada",
	"DE": "Allemagne",
	"IT": "Italie",
	"ES": "Espagne",
	"GB": "Royaume-Uni",
	"MA": "Maroc",
	"DZ": "Algérie",
	"TN": "Tunisie",
}

const unknownCode = "XX"

// Resolver maps a client address to country info via a single
// unauthenticated lookup call. It never returns an error: any failure
// collapses to the Unknown sentinel so login is never blocked by
// geolocation being down.
type Resolver struct {
	client *http.Client
	cfg    config.GeoConfig
	log    zerolog.Logger
}

func NewResolver(cfg config.GeoConfig, log zerolog.Logger) *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    log,
	}
}

type lookupResponse struct {
	Country string `json:"country"`
}

func (r *Resolver) Resolve(ctx context.Context, ip string) models.CountryInfo {
	code, err := r.lookup(ctx, ip)
	if err != nil {
		r.log.Warn().Err(err).Str("ip", ip).Msg("country lookup failed")
		return r.unknown()
	}
	return r.fromCode(code)
}

func (r *Resolver) lookup(ctx context.Context, ip string) (string, error) {
	url := strings.TrimSuffix(r.cfg.LookupURL, "/") + "/" + ip

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode lookup response: %w", err)
	}

	code := strings.ToUpper(strings.TrimSpace(body.Country))
	if len(code) != 2 {
		return "", fmt.Errorf("bad country code %q", body.Country)
	}
	return code, nil
}

func (r *Resolver) fromCode(code string) models.CountryInfo {
	name, ok := countryNames[code]
	if !ok {
		name = code
	}
	return models.CountryInfo{
		Country:     name,
		CountryCode: code,
		Flag:        r.FlagURL(code),
	}
}

func (r *Resolver) unknown() models.CountryInfo {
	return models.CountryInfo{
		Country:     "Unknown",
		CountryCode: unknownCode,
		Flag:        r.FlagURL(unknownCode),
	}
}

func (r *Resolver) FlagURL(code string) string {
	return fmt.Sprintf("%s/%s/flat/32.png", strings.TrimSuffix(r.cfg.FlagURLBase, "/"), code)
}
