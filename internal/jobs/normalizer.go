package jobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"songrelay/internal/domain"
)

// ErrMissingTaskID marks a callback that cannot be attributed to any task.
// Such callbacks are acknowledged and dropped.
var ErrMissingTaskID = errors.New("jobs: callback has no task id")

const callbackSuccessCode = 200

type callbackEnvelope struct {
	Code   *int            `json:"code"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	TaskID string          `json:"task_id"`
	ID     string          `json:"id"`
}

type callbackData struct {
	CallbackType string          `json:"callbackType"`
	TaskID       string          `json:"task_id"`
	Data         json.RawMessage `json:"data"`
}

// NormalizeCallback turns a provider webhook body into the job record that
// should replace whatever is stored for its task.
//
// The nested {code, data:{task_id, data:[...]}} shape is canonical. Older
// flat payloads ({id|task_id, ...}) are still accepted: a missing code counts
// as success and the tracks come from a top-level data array, or the body
// itself when there is none.
//
// A SUCCESS callback without any audio URL stays pending. The provider sends
// early callbacks before audio is attached, and clients must keep polling.
// A malformed song list never drops an attributable callback: it is read as
// empty, and entries that are not objects are skipped.
func NormalizeCallback(raw []byte) (*domain.JobRecord, error) {
	var env callbackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("jobs: decode callback: %w", err)
	}

	var (
		taskID       string
		code         int
		callbackType string
		tracks       []domain.Track
	)

	nested, isNested := decodeNested(env.Data)
	switch {
	case isNested:
		taskID = nested.TaskID
		callbackType = nested.CallbackType
		tracks = decodeTracks(nested.Data)
		if env.Code != nil {
			code = *env.Code
		}
	default:
		taskID = strings.TrimSpace(env.TaskID)
		if taskID == "" {
			taskID = strings.TrimSpace(env.ID)
		}
		if taskID == "" {
			return nil, ErrMissingTaskID
		}
		code = callbackSuccessCode
		if env.Code != nil {
			code = *env.Code
		}
		tracks = decodeFlatTracks(raw, env.Data)
	}
	if tracks == nil {
		tracks = []domain.Track{}
	}

	statusText := domain.ResultStatusFailed
	if code == callbackSuccessCode {
		statusText = domain.ResultStatusSuccess
	}

	result := &domain.SongResult{
		ID:           taskID,
		Status:       statusText,
		CallbackType: callbackType,
		Message:      env.Msg,
		SunoData:     tracks,
		OriginalData: append(json.RawMessage(nil), raw...),
	}

	status := domain.JobStatusPending
	if statusText == domain.ResultStatusSuccess && result.HasAudio() {
		status = domain.JobStatusCompleted
	}

	return &domain.JobRecord{TaskID: taskID, Status: status, Data: result}, nil
}

// decodeNested recognizes the canonical shape by data.task_id alone, so a
// malformed song list cannot hide the task it belongs to.
func decodeNested(data json.RawMessage) (callbackData, bool) {
	var nested callbackData
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nested, false
	}
	var fields struct {
		CallbackType json.RawMessage `json:"callbackType"`
		TaskID       json.RawMessage `json:"task_id"`
		Data         json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nested, false
	}
	nested = callbackData{
		CallbackType: scalarString(fields.CallbackType),
		TaskID:       strings.TrimSpace(scalarString(fields.TaskID)),
		Data:         fields.Data,
	}
	return nested, nested.TaskID != ""
}

// scalarString returns a JSON string's value or a number's literal text.
func scalarString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// decodeTracks reads a song list leniently: anything but an array is empty
// and non-object entries are skipped.
func decodeTracks(data json.RawMessage) []domain.Track {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil
	}
	tracks := make([]domain.Track, 0, len(entries))
	for _, entry := range entries {
		var track domain.Track
		if err := json.Unmarshal(entry, &track); err != nil || track == nil {
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks
}

func decodeFlatTracks(raw []byte, data json.RawMessage) []domain.Track {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeTracks(trimmed)
	}
	var single domain.Track
	if err := json.Unmarshal(raw, &single); err != nil || single == nil {
		return nil
	}
	return []domain.Track{single}
}
