package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

func ticketSignature(eventKey, tierKey, owner, secret string) string {
	data := fmt.Sprintf("%s:%s:%s", eventKey, tierKey, owner)
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// TicketQRData builds the signed payload embedded in a ticket QR code.
func TicketQRData(eventKey, tierKey, owner, secret string) string {
	return fmt.Sprintf("event:%s;tier:%s;owner:%s;signature:%s",
		eventKey, tierKey, owner,
		ticketSignature(eventKey, tierKey, owner, secret),
	)
}

// ValidateTicketQRData checks the HMAC on a scanned payload and returns
// its fields.
func ValidateTicketQRData(qrData, secret string) (eventKey, tierKey, owner string, err error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 ||
		!strings.HasPrefix(parts[0], "event:") ||
		!strings.HasPrefix(parts[1], "tier:") ||
		!strings.HasPrefix(parts[2], "owner:") ||
		!strings.HasPrefix(parts[3], "signature:") {
		return "", "", "", fmt.Errorf("invalid QR data format")
	}
	eventKey = strings.TrimPrefix(parts[0], "event:")
	tierKey = strings.TrimPrefix(parts[1], "tier:")
	owner = strings.TrimPrefix(parts[2], "owner:")
	signature := strings.TrimPrefix(parts[3], "signature:")

	expected := ticketSignature(eventKey, tierKey, owner, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", "", "", fmt.Errorf("invalid QR signature")
	}
	return eventKey, tierKey, owner, nil
}
