package services

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notifier delivers out-of-band alerts: SMS verification codes, emergency
// contact notifications and rapid-response dispatch. Real providers are out
// of scope for this service, so the only implementation logs what would be
// sent.
type Notifier interface {
	SendSMS(ctx context.Context, phone, message string) error
	NotifyContact(ctx context.Context, phone string, activationID string) error
	NotifyDispatch(ctx context.Context, activationID string, address string) error
}

type MockNotifier struct{}

func NewMockNotifier() Notifier {
	return &MockNotifier{}
}

func (mn *MockNotifier) SendSMS(_ context.Context, phone, message string) error {
	logrus.Infof("[MOCK SMS] To: %s, Message: %s", phone, message)
	return nil
}

func (mn *MockNotifier) NotifyContact(_ context.Context, phone string, activationID string) error {
	logrus.Infof("[MOCK SMS] Emergency alert to %s for activation %s", phone, activationID)
	return nil
}

func (mn *MockNotifier) NotifyDispatch(_ context.Context, activationID string, address string) error {
	logrus.Infof("[MOCK DISPATCH] Rapid-response unit notified for activation %s at %s", activationID, address)
	return nil
}
