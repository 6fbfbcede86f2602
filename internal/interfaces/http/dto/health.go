package dto

// BannerResponse is the root welcome payload. It keeps the historical
// shape and is not wrapped in the response envelope.
type BannerResponse struct {
	Message    string `json:"message"`
	Status     string `json:"status"`
	ModelReady bool   `json:"model_ready"`
	ModelPath  string `json:"model_path"`
}

// ModelInfo describes the loaded model in health output.
type ModelInfo struct {
	Path   string `json:"path"`
	Loaded bool   `json:"loaded"`
}

// HealthResponse is the health payload, also unwrapped.
type HealthResponse struct {
	Status          string    `json:"status"`
	ModelReady      bool      `json:"model_ready"`
	AvailableGenres []string  `json:"available_genres"`
	ModelInfo       ModelInfo `json:"model_info"`
}

// DashboardResponse aggregates store statistics for the overview page.
type DashboardResponse struct {
	WorldStats     WorldStatsDTO     `json:"world_stats"`
	StoryStats     StoryStatsDTO     `json:"story_stats"`
	CharacterStats CharacterStatsDTO `json:"character_stats"`
}

// WorldStatsDTO summarizes the world store.
type WorldStatsDTO struct {
	SettingsCount  int `json:"settings_count"`
	TimelineEvents int `json:"timeline_events"`
	ActivePlots    int `json:"active_plots"`
}

// StoryStatsDTO summarizes the story store.
type StoryStatsDTO struct {
	TotalStories  int `json:"total_stories"`
	TotalChapters int `json:"total_chapters"`
	TotalWords    int `json:"total_words"`
}

// CharacterStatsDTO summarizes the character store.
type CharacterStatsDTO struct {
	TotalCharacters int `json:"total_characters"`
}
