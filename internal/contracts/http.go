package contracts

import "time"

// SubmissionResponse mirrors the review UI's wire contract: videoId and
// privacyStatus keep the field names the original clients already consume.
type SubmissionResponse struct {
	SubmissionID  string `json:"submissionId"`
	VideoID       string `json:"videoId,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	PrivacyStatus string `json:"privacyStatus"`
	State         string `json:"state"`
	FailureCode   string `json:"failureCode,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

type UploadResponse struct {
	SubmissionID string `json:"submissionId"`
	VideoID      string `json:"videoId"`
	State        string `json:"state"`
}

type ApproveRequest struct {
	SubmissionID  string `json:"submissionId,omitempty"`
	VideoID       string `json:"videoId,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	PrivacyStatus string `json:"privacyStatus"`
}

type RejectRequest struct {
	SubmissionID string `json:"submissionId,omitempty"`
	VideoID      string `json:"videoId,omitempty"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type EventEnvelope struct {
	EventID       string      `json:"event_id"`
	EventType     string      `json:"event_type"`
	OccurredAt    time.Time   `json:"occurred_at"`
	PartitionKey  string      `json:"partition_key"`
	SourceService string      `json:"source_service"`
	SchemaVersion string      `json:"schema_version"`
	Data          interface{} `json:"data"`
}

type SubmissionEventData struct {
	SubmissionID  string `json:"submission_id"`
	VideoID       string `json:"video_id,omitempty"`
	State         string `json:"state"`
	PrivacyStatus string `json:"privacy_status"`
	FailureCode   string `json:"failure_code,omitempty"`
}
