// Package sms implements the NotificationService with a mocked multi-provider
// SMS dispatcher. No real provider is contacted; dispatches are logged, and
// failed sends are queued for bounded retries on a background ticker, mirroring
// how the production integration would behave in offline areas.
package sms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"agritrace/config"
	"agritrace/internal/domain/service"
	"agritrace/internal/errors"

	"go.uber.org/fx"
)

const (
	defaultCountryCode   = "91"
	defaultMaxAttempts   = 3
	defaultRetryInterval = 30 * time.Second
	maxMessageLength     = 160
)

var defaultProviders = []string{"textlocal", "msg91", "twilio"}

// dispatchFunc performs one provider send attempt and returns a message id.
// It is a field so tests can substitute a failing provider.
type dispatchFunc func(provider, phone, message string) (string, error)

type queuedMessage struct {
	phone    string
	message  string
	attempts int
}

type smsService struct {
	sender        string
	countryCode   string
	providers     []string
	maxAttempts   int
	retryInterval time.Duration
	logger        *slog.Logger
	dispatch      dispatchFunc
	unreachable   map[string]struct{}

	mu    sync.Mutex
	queue []*queuedMessage

	done chan struct{}
	wg   sync.WaitGroup
}

// SMSServiceParams holds dependencies for the SMS service, injected by Fx.
type SMSServiceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewSMSService creates the mock SMS dispatcher and ties its retry loop to
// the application lifecycle.
func NewSMSService(params SMSServiceParams) service.NotificationService {
	svc := newSMSService(params.Config, params.Logger)

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			svc.startRetryLoop()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			svc.stop()

			return nil
		},
	})

	return svc
}

func newSMSService(cfg *config.Config, logger *slog.Logger) *smsService {
	svc := &smsService{
		sender:        "AGRITR",
		countryCode:   defaultCountryCode,
		providers:     defaultProviders,
		maxAttempts:   defaultMaxAttempts,
		retryInterval: defaultRetryInterval,
		logger:        logger,
		done:          make(chan struct{}),
	}
	svc.dispatch = svc.mockDispatch

	if cfg.SMS != nil {
		if cfg.SMS.Sender != "" {
			svc.sender = cfg.SMS.Sender
		}
		if cfg.SMS.CountryCode != "" {
			svc.countryCode = cfg.SMS.CountryCode
		}
		if len(cfg.SMS.Providers) > 0 {
			svc.providers = cfg.SMS.Providers
		}
		if cfg.SMS.MaxAttempts > 0 {
			svc.maxAttempts = cfg.SMS.MaxAttempts
		}
		if cfg.SMS.RetryInterval > 0 {
			svc.retryInterval = cfg.SMS.RetryInterval
		}
	}

	// Normalized after the country code override so that bare 10-digit
	// entries match formatted destinations.
	svc.unreachable = make(map[string]struct{})
	if cfg.SMS != nil {
		for _, number := range cfg.SMS.UnreachableNumbers {
			svc.unreachable[svc.formatPhoneNumber(number)] = struct{}{}
		}
	}

	return svc
}

// Send dispatches a message, falling back through the configured providers.
// On total failure the message is queued for retry and a queued receipt is
// returned together with the error.
func (s *smsService) Send(ctx context.Context, phone, message string) (*service.DeliveryReceipt, error) {
	formatted := s.formatPhoneNumber(phone)
	truncated := truncateMessage(message)

	receipt, err := s.attemptSend(formatted, truncated)
	if err == nil {
		return receipt, nil
	}

	s.enqueue(&queuedMessage{phone: formatted, message: truncated})
	s.logger.Warn("SMS dispatch failed, queued for retry",
		slog.String("phone", formatted),
		slog.Any("error", err),
	)

	return &service.DeliveryReceipt{Queued: true}, err
}

// attemptSend tries each provider in order and returns the first success.
func (s *smsService) attemptSend(phone, message string) (*service.DeliveryReceipt, error) {
	var lastErr error
	for _, provider := range s.providers {
		messageID, err := s.dispatch(provider, phone, message)
		if err != nil {
			s.logger.Debug("SMS provider failed",
				slog.String("provider", provider),
				slog.Any("error", err),
			)
			lastErr = err

			continue
		}

		return &service.DeliveryReceipt{
			Provider:  provider,
			MessageID: messageID,
			Delivered: true,
		}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no SMS providers configured")
	}

	return nil, errors.Wrap(lastErr, "all SMS providers failed")
}

// mockDispatch stands in for a real provider API call. Destinations listed
// in the unreachable set fail deterministically; everything else succeeds
// and is logged.
func (s *smsService) mockDispatch(provider, phone, message string) (string, error) {
	if _, blocked := s.unreachable[phone]; blocked {
		return "", errors.Errorf("%s: destination %s unreachable", provider, phone)
	}

	s.logger.Info("SMS dispatched",
		slog.String("provider", provider),
		slog.String("sender", s.sender),
		slog.String("phone", phone),
		slog.String("message", message),
	)

	return fmt.Sprintf("%s_%d", provider, time.Now().UnixMilli()), nil
}

func (s *smsService) enqueue(msg *queuedMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, msg)
}

// QueueLength reports the number of messages waiting for retry.
func (s *smsService) QueueLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}

func (s *smsService) startRetryLoop() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.retryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.processQueue()
			case <-s.done:
				return
			}
		}
	}()
}

func (s *smsService) stop() {
	close(s.done)
	s.wg.Wait()
}

// processQueue retries every queued message once, dropping messages that
// exhaust their attempts.
func (s *smsService) processQueue() {
	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	s.logger.Info("Processing queued SMS messages", slog.Int("count", len(pending)))

	var toRetry []*queuedMessage
	for _, msg := range pending {
		if _, err := s.attemptSend(msg.phone, msg.message); err == nil {
			continue
		}

		msg.attempts++
		if msg.attempts < s.maxAttempts {
			toRetry = append(toRetry, msg)
		} else {
			s.logger.Warn("SMS dropped after max attempts",
				slog.String("phone", msg.phone),
				slog.Int("attempts", msg.attempts),
			)
		}
	}

	s.mu.Lock()
	s.queue = append(s.queue, toRetry...)
	s.mu.Unlock()
}

// formatPhoneNumber strips non-digits and prefixes the configured country
// code for bare 10-digit numbers.
func (s *smsService) formatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	cleaned := digits.String()
	if len(cleaned) == 10 {
		cleaned = s.countryCode + cleaned
	}

	return "+" + cleaned
}

func truncateMessage(message string) string {
	if len(message) <= maxMessageLength {
		return message
	}

	return message[:maxMessageLength-3] + "..."
}
