package repo

import (
	"encoding/json"
	"errors"

	"songrelay/internal/domain"
)

var errEmptyTaskID = errors.New("repo: task id is required")

func pendingRecord(taskID string, initial json.RawMessage) domain.JobRecord {
	return domain.JobRecord{
		TaskID:  taskID,
		Status:  domain.JobStatusPending,
		Initial: nullableRaw(initial),
	}
}

func nullableRaw(b json.RawMessage) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return b
}
