package srs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sky-flux/flux"
)

// Stored state blobs are versioned so a future format change can migrate
// old rows in place.
const (
	schemaVersionKey = "schema_version"
	schemaVersion    = 1
)

// Timestamp fields inside a state blob. Blobs written by earlier backends
// may carry these in non-RFC 3339 shapes, so they are normalized before
// decoding.
var timestampKeys = []string{"due", "last_review"}

// timestampLayouts are tried in order when a timestamp arrives as a string.
// Layouts without a zone are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// decodeCardState parses a stored state blob into the scheduler's card
// shape. The full envelope map is returned alongside so fields this package
// does not model survive a round trip.
func decodeCardState(state json.RawMessage) (flux.Card, map[string]any, error) {
	if len(state) == 0 {
		return flux.Card{}, nil, ErrEmptyState
	}

	var envelope map[string]any
	if err := json.Unmarshal(state, &envelope); err != nil {
		return flux.Card{}, nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	normalizeTimestamps(envelope)

	normalized, err := json.Marshal(envelope)
	if err != nil {
		return flux.Card{}, nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	var card flux.Card
	if err := json.Unmarshal(normalized, &card); err != nil {
		return flux.Card{}, nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	return card, envelope, nil
}

// encodeCardState serializes a card back into a state blob, layering the
// card's fields over the prior envelope and stamping the schema version.
func encodeCardState(card flux.Card, envelope map[string]any) (json.RawMessage, error) {
	data, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheduler state: %w", err)
	}

	var cardFields map[string]any
	if err := json.Unmarshal(data, &cardFields); err != nil {
		return nil, fmt.Errorf("failed to encode scheduler state: %w", err)
	}

	merged := make(map[string]any, len(envelope)+len(cardFields)+1)
	for key, value := range envelope {
		merged[key] = value
	}
	for key, value := range cardFields {
		merged[key] = value
	}
	if _, ok := merged[schemaVersionKey]; !ok {
		merged[schemaVersionKey] = schemaVersion
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheduler state: %w", err)
	}

	return encoded, nil
}

// normalizeTimestamps rewrites known timestamp fields to RFC 3339 strings.
// Unparseable values are left untouched; decoding will reject them.
func normalizeTimestamps(envelope map[string]any) {
	for _, key := range timestampKeys {
		value, ok := envelope[key]
		if !ok || value == nil {
			continue
		}
		if normalized, ok := normalizeTimestamp(value); ok {
			envelope[key] = normalized
		}
	}
}

// normalizeTimestamp converts a single timestamp value to an RFC 3339
// string. It accepts native time values and the string layouts listed above.
func normalizeTimestamp(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), true
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC().Format(time.RFC3339Nano), true
			}
		}
		return "", false
	default:
		return "", false
	}
}
