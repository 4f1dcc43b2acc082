package language

import "sync"

const DefaultLanguage = "en"

// LanguageInfo contains information about a supported language
type LanguageInfo struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsEnabled  bool   `json:"is_enabled"`
}

// ValidationResult represents the result of language validation
type ValidationResult struct {
	Code         string `json:"code"`
	UsedFallback bool   `json:"used_fallback"`
}

// Manager handles language support and validation for localized advice
type Manager struct {
	languages map[string]*LanguageInfo
	mu        sync.RWMutex
}

// NewManager creates a new language manager with the default languages
func NewManager() *Manager {
	return &Manager{
		languages: map[string]*LanguageInfo{
			"en": {
				Code:       "en",
				Name:       "English",
				NativeName: "English",
				IsEnabled:  true,
			},
			"hi": {
				Code:       "hi",
				Name:       "Hindi",
				NativeName: "हिन्दी",
				IsEnabled:  true,
			},
		},
	}
}

// AddLanguage registers or replaces a language
func (m *Manager) AddLanguage(info LanguageInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languages[info.Code] = &info
}

// IsSupported checks if a language code is supported and enabled
func (m *Manager) IsSupported(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lang, exists := m.languages[code]
	return exists && lang.IsEnabled
}

// Validate validates a language code, falling back to the default language
// when the code is unknown or disabled
func (m *Manager) Validate(code string) ValidationResult {
	if m.IsSupported(code) {
		return ValidationResult{Code: code}
	}

	return ValidationResult{
		Code:         DefaultLanguage,
		UsedFallback: true,
	}
}

// List returns all registered languages
func (m *Manager) List() []LanguageInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]LanguageInfo, 0, len(m.languages))
	for _, info := range m.languages {
		out = append(out, *info)
	}
	return out
}
