package dto

// RefreshResponseDTO reports the outcome of a refresh trigger: whether new
// data arrived and how many polling attempts it took.
type RefreshResponseDTO struct {
	Success   bool   `json:"success"`
	Refreshed bool   `json:"refreshed"`
	Attempts  int    `json:"attempts"`
	Message   string `json:"message,omitempty"`
}
