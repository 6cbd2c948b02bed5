package models

// ViewState is the dashboard's only mutable state. Slices and the snapshot
// are replaced on every successful fetch and never modified afterwards, so
// a copied ViewState can be read without locking.
type ViewState struct {
	Predictions   []PredictionPoint `json:"predictions"`
	CurrentStatus *StatusSnapshot   `json:"current_status"`
	Loading       bool              `json:"loading"`
}

// InitialViewState is the state right after mount.
func InitialViewState() ViewState {
	return ViewState{Loading: true}
}
