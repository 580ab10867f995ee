// Package storage provides the state mirror: every container mutation writes
// its state as a JSON blob under a fixed key, so a restart restores what a
// browser reload would. Mirroring is best-effort and never fails an operation.
package storage

import "context"

// Fixed mirror keys, matching the persisted layout of the client app.
const (
	KeyAuth         = "securix-auth"
	KeyOrders       = "securix-orders"
	KeySubscription = "securix-subscription"

	// Verification codes live under KeySMSCodePrefix + phone.
	KeySMSCodePrefix = "sms_code_"
)

// Mirror is a key to JSON-blob store.
type Mirror interface {
	Put(ctx context.Context, key string, value interface{}) error
	// Get unmarshals the stored blob into dest and reports whether the key
	// existed.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, key string) error
}
