package messaging

import (
	"context"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// Publisher defines the interface for announcing settled actions on the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishSettlement publishes an applied action. Republishing the same message id is deduplicated by the broker.
	PublishSettlement(ctx context.Context, event domain.SettlementEvent) error
	// Close closes the connection
	Close()
}
