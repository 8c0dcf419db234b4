package dto

type HealthStatus struct {
	Ok        bool   `json:"ok"`
	OllamaUrl string `json:"ollama_url"`
	Model     string `json:"model"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
