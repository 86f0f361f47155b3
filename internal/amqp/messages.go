package amqp

import (
	"encoding/json"
	"time"
)

// ExportMessage asks the worker to export one movement. It carries only the
// ID; the worker fetches the current row from the database so a stale message
// can never overwrite fresher data.
type ExportMessage struct {
	MovementID int64     `json:"movement_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewExportMessage(movementID int64) *ExportMessage {
	return &ExportMessage{
		MovementID: movementID,
		Timestamp:  time.Now(),
	}
}

func (m *ExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExportMessageFromJSON(data []byte) (*ExportMessage, error) {
	var msg ExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
