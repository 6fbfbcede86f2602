package dto

// GenerateRequest is the single plot generation payload. Genre defaults
// to fantasy; a nil temperature takes the configured default.
type GenerateRequest struct {
	Prompt         string   `json:"prompt" binding:"required"`
	Genre          string   `json:"genre"`
	CharacterNames []string `json:"character_names"`
	MaxTokens      int      `json:"max_tokens"`
	Temperature    *float64 `json:"temperature"`
}

// GenerateResponse is the single plot generation result.
type GenerateResponse struct {
	Response            string `json:"response"`
	Genre               string `json:"genre"`
	CharacterMemoryUsed bool   `json:"character_memory_used"`
	ModelUsed           bool   `json:"model_used"`
	ModelPath           string `json:"model_path"`
}

// MultipleGenerateRequest asks for several variants of the same plot.
type MultipleGenerateRequest struct {
	Prompt         string   `json:"prompt" binding:"required"`
	Genre          string   `json:"genre"`
	CharacterNames []string `json:"character_names"`
	NumVariations  int      `json:"num_variations"`
}

// Variation is one sampled plot variant.
type Variation struct {
	Variation   int     `json:"variation"`
	Response    string  `json:"response"`
	Temperature float64 `json:"temperature"`
}

// MultipleGenerateResponse carries the variants that generated.
type MultipleGenerateResponse struct {
	Variations      []Variation `json:"variations"`
	Genre           string      `json:"genre"`
	TotalVariations int         `json:"total_variations"`
	ModelUsed       bool        `json:"model_used"`
}

// AdvancedGenerateRequest is a context-integrated generation payload.
// SceneIndex is accepted for compatibility with older clients and has
// no effect.
type AdvancedGenerateRequest struct {
	Prompt             string   `json:"prompt" binding:"required"`
	StoryID            string   `json:"story_id"`
	ChapterNumber      int      `json:"chapter_number"`
	SceneIndex         int      `json:"scene_index"`
	UseWorldContext    *bool    `json:"use_world_context"`
	UseCharacterMemory *bool    `json:"use_character_memory"`
	MaxTokens          int      `json:"max_tokens"`
	Temperature        *float64 `json:"temperature"`
}

// ContextUsed reports the context blocks that actually entered the
// prompt.
type ContextUsed struct {
	World           bool `json:"world"`
	Story           bool `json:"story"`
	Chapter         bool `json:"chapter"`
	CharacterMemory bool `json:"character_memory"`
}

// AdvancedGenerateResponse is the context-integrated generation result.
type AdvancedGenerateResponse struct {
	Response    string      `json:"response"`
	ContextUsed ContextUsed `json:"context_used"`
	ModelUsed   bool        `json:"model_used"`
	ModelPath   string      `json:"model_path"`
}

// GenresResponse lists the supported genres with their display names.
type GenresResponse struct {
	Genres       []string          `json:"genres"`
	DisplayNames map[string]string `json:"display_names"`
}
