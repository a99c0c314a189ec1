package reload_resource

// ReloadRequest HTTP request model
type ReloadRequest struct {
	Resource string `json:"resource"`
}
