package feedsync

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// redactedAttributes are stripped from every record before the telemetry
// upload: free text, media references and anything locating or naming the
// object more precisely than postal code level.
var redactedAttributes = []string{
	"alias",
	"anbieternr",
	"objekttitel",
	"objektbeschreibung",
	"ausstattBeschr",
	"lage",
	"sonstigeAngaben",
	"objektText",
	"dreizeiler",
	"strasse",
	"hausnummer",
	"breitengrad",
	"laengengrad",
	"linkObjektUrl",
	"linkVideotour",
	"titleImageSRC",
	"imageSRC",
	"planImageSRC",
	"exteriorViewImageSRC",
	"interiorViewImageSRC",
	"mapViewImageSRC",
	"panoramaImageSRC",
	"epassSkalaImageSRC",
	"logoImageSRC",
	"qrImageSRC",
	"documentSRC",
}

// Telemetry uploads an anonymized batch of the imported records after a
// run. The upload is best effort; failures never affect the run outcome.
type Telemetry struct {
	enabled  bool
	endpoint string
	version  string
	client   *http.Client
	logger   *zap.Logger
}

// NewTelemetry creates the post-run reporter from the import configuration
func NewTelemetry(cfg config.ImportConfig, logger *zap.Logger) *Telemetry {
	return &Telemetry{
		enabled:  cfg.TelemetryEnabled,
		endpoint: cfg.TelemetryEndpoint,
		version:  cfg.Version,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type telemetryPayload struct {
	Version   string              `json:"version"`
	Interface string              `json:"interface"`
	Count     int                 `json:"count"`
	Records   []map[string]string `json:"records"`
}

// Report posts the redacted batch. Errors are logged and swallowed.
func (t *Telemetry) Report(ctx context.Context, run *Run, estates []catalog.Record) {
	if !t.enabled || len(estates) == 0 {
		return
	}

	payload := telemetryPayload{
		Version:   t.version,
		Interface: run.Interface.Name,
		Count:     len(estates),
		Records:   make([]map[string]string, 0, len(estates)),
	}
	for _, record := range estates {
		payload.Records = append(payload.Records, redact(record))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		t.logger.Debug("telemetry payload marshal failed", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		t.logger.Debug("telemetry request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Debug("telemetry upload failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		t.logger.Debug("telemetry upload rejected", zap.Int("status", resp.StatusCode))
	}
}

func redact(record catalog.Record) map[string]string {
	clean := record.Clone()
	for _, attr := range redactedAttributes {
		delete(clean, attr)
	}
	return clean
}
