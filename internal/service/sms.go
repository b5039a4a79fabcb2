package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/valyala/fasthttp"
)

const smsTimeout = 5 * time.Second

// SMSSender posts alerts to an external SMS gateway webhook. The
// gateway is best-effort: a failed send is logged and swallowed, never
// propagated, because the persisted in-app notification is the source
// of truth.
type SMSSender struct {
	url    string
	client *fasthttp.Client
}

// NewSMSSender creates a sender. An empty webhook URL disables SMS
// (Send becomes a no-op).
func NewSMSSender(webhookURL string) *SMSSender {
	if webhookURL == "" {
		log.Println("sms: no webhook configured, secondary delivery disabled")
		return &SMSSender{}
	}
	return &SMSSender{
		url: webhookURL,
		client: &fasthttp.Client{
			ReadTimeout:  smsTimeout,
			WriteTimeout: smsTimeout,
		},
	}
}

// Enabled reports whether a gateway is configured.
func (s *SMSSender) Enabled() bool {
	return s.url != ""
}

// Send delivers one text to the given phone numbers.
func (s *SMSSender) Send(phones []string, text string) error {
	if s.url == "" || len(phones) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"to":   phones,
		"text": text,
	})
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, smsTimeout); err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode())
	}
	return nil
}
