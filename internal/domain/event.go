package domain

// SettlementEvent announces an action the hub has applied
type SettlementEvent struct {
	MessageID string        `json:"message_id"`
	Kind      ActionKind    `json:"kind"`
	Status    ResultStatus  `json:"status"`
	Details   ResultDetails `json:"details"`
}
