package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance bounds how old a signed webhook payload may be
const DefaultTolerance = 5 * time.Minute

// ConstructEvent verifies the signature header of a raw webhook payload and
// unmarshals it into an Event. The header format is "t=<unix>,v1=<hex hmac>"
// where the HMAC-SHA256 is computed over "<unix>.<payload>" with the webhook
// secret. A mismatch or stale timestamp yields ErrInvalidSignature.
func ConstructEvent(payload []byte, sigHeader, secret string) (Event, error) {
	return constructEventWithTolerance(payload, sigHeader, secret, DefaultTolerance, time.Now())
}

func constructEventWithTolerance(payload []byte, sigHeader, secret string, tolerance time.Duration, now time.Time) (Event, error) {
	var event Event

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return event, err
	}

	if tolerance > 0 && now.Sub(time.Unix(timestamp, 0)) > tolerance {
		return event, fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	expected := computeSignature(timestamp, payload, secret)
	valid := false
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			valid = true
			break
		}
	}
	if !valid {
		return event, fmt.Errorf("%w: no matching v1 signature", ErrInvalidSignature)
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event payload: %w", err)
	}

	return event, nil
}

// parseSignatureHeader splits the signature header into its timestamp and the
// list of v1 signatures. Unknown schemes are ignored for forward compatibility.
func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	}

	var timestamp int64 = -1
	var signatures []string

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return 0, nil, fmt.Errorf("%w: malformed signature header", ErrInvalidSignature)
		}
		switch parts[0] {
		case "t":
			t, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: malformed timestamp", ErrInvalidSignature)
			}
			timestamp = t
		case "v1":
			signatures = append(signatures, parts[1])
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: missing timestamp or v1 signature", ErrInvalidSignature)
	}

	return timestamp, signatures, nil
}

func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload builds a valid signature header for a payload. It exists so
// tests and local tooling can produce deliverable webhook requests.
func SignPayload(payload []byte, secret string, now time.Time) string {
	timestamp := now.Unix()
	signature := hex.EncodeToString(computeSignature(timestamp, payload, secret))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, signature)
}
