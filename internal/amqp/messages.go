package amqp

import (
	"encoding/json"
	"time"

	"lenta/internal/core"
)

// TransactionUpsertMessage carries a full transaction so the ingest worker can
// store it without a round trip to the upstream API.
type TransactionUpsertMessage struct {
	Transaction core.Transaction `json:"transaction"`
	Timestamp   time.Time        `json:"timestamp"`
}

func NewTransactionUpsertMessage(t core.Transaction) *TransactionUpsertMessage {
	return &TransactionUpsertMessage{
		Transaction: t,
		Timestamp:   time.Now(),
	}
}

func (m *TransactionUpsertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionUpsertMessageFromJSON(data []byte) (*TransactionUpsertMessage, error) {
	var msg TransactionUpsertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
