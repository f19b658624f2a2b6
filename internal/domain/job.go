package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// JobStatus enumerates the lifecycle states a stored job can be in.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Provider-side outcome reported inside a normalized callback.
const (
	ResultStatusSuccess = "SUCCESS"
	ResultStatusFailed  = "FAILED"
)

// JobRecord is the latest known state for one upstream task.
type JobRecord struct {
	TaskID    string          `json:"taskId"`
	Status    JobStatus       `json:"status"`
	Data      *SongResult     `json:"data,omitempty"`
	Initial   json.RawMessage `json:"initial,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Completed reports whether the record is authoritative and may be served
// without asking the provider again.
func (r *JobRecord) Completed() bool {
	return r != nil && r.Status == JobStatusCompleted
}

// SongResult is the canonical form of a provider callback.
type SongResult struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	CallbackType string          `json:"callbackType,omitempty"`
	Message      string          `json:"message,omitempty"`
	SunoData     []Track         `json:"sunoData"`
	OriginalData json.RawMessage `json:"original_data,omitempty"`
}

// HasAudio reports whether at least one track is playable.
func (s *SongResult) HasAudio() bool {
	if s == nil {
		return false
	}
	for _, t := range s.SunoData {
		if t.AudioURL() != "" {
			return true
		}
	}
	return false
}

// Track is a provider song entry. Unknown fields are kept as-is.
type Track map[string]any

var audioURLKeys = []string{"audio_url", "audioUrl", "streamAudioUrl"}

// AudioURL returns the first non-empty audio URL the provider attached.
func (t Track) AudioURL() string {
	for _, key := range audioURLKeys {
		if v, ok := t[key].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
