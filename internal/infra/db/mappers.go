package db

import (
	"encoding/json"
	"log/slog"
)

func RawMessageToMap(raw json.RawMessage) map[string]interface{} {
	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Error("error unmarshaling content", "err", err)
	}
	return result
}

func MapToRawMessage(data map[string]interface{}) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		slog.Error("error marshaling content", "err", err)
		return nil
	}
	return json.RawMessage(bytes)
}
