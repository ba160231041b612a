package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// DiscordView represents one discord in a detection response
type DiscordView struct {
	Rank      int     `json:"rank"`
	Position  int     `json:"position"`
	End       int     `json:"end"` // Exclusive
	Distance  float64 `json:"nn_distance"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"` // Time of the last point in the window
}

// DiscordResponse represents a discord detection response
type DiscordResponse struct {
	Algorithm              string        `json:"algorithm"`
	Metric                 string        `json:"metric"`
	SeriesLength           int           `json:"series_length"`
	WindowSize             int           `json:"window_size"`
	PAASize                int           `json:"paa_size"`
	AlphabetSize           int           `json:"alphabet_size"`
	NormalizationThreshold float64       `json:"normalization_threshold"`
	Requested              int           `json:"requested"`
	Seed                   uint64        `json:"seed"`
	Discords               []DiscordView `json:"discords"`
	ElapsedMs              float64       `json:"elapsed_ms"`
}

// DetectorListResponse represents list detectors response
type DetectorListResponse struct {
	Detectors []string `json:"detectors"`
	Default   string   `json:"default"`
}

// JobSubmitResponse represents an accepted asynchronous job
type JobSubmitResponse struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
}

// JobStatusResponse represents the state of an asynchronous job
type JobStatusResponse struct {
	JobID       string           `json:"job_id"`
	Status      string           `json:"status"`
	SubmittedAt string           `json:"submitted_at"`
	CompletedAt string           `json:"completed_at,omitempty"`
	Result      *DiscordResponse `json:"result,omitempty"`
	Error       *ErrorDetail     `json:"error,omitempty"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
