// Package whatsapp holds the WhatsApp transport helpers: reply chunking and
// the TwiML response format Twilio expects from webhook handlers.
package whatsapp

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

type twimlResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// WriteTwiML writes the reply segments as a TwiML document, one <Message>
// element per segment, as a single logical response to the webhook call.
func WriteTwiML(w http.ResponseWriter, segments []string) error {
	body, err := xml.Marshal(twimlResponse{Messages: segments})
	if err != nil {
		return fmt.Errorf("marshal twiml: %w", err)
	}
	w.Header().Set("Content-Type", "text/xml")
	if _, err := fmt.Fprint(w, xml.Header, string(body)); err != nil {
		return fmt.Errorf("write twiml: %w", err)
	}
	return nil
}

// NormalizeSender strips the transport prefix from a webhook From value,
// e.g. "whatsapp:+33612345678" -> "+33612345678".
func NormalizeSender(from string) string {
	return strings.TrimSpace(strings.TrimPrefix(from, "whatsapp:"))
}
