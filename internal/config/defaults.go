package config

import "github.com/ariel-frischer/profilecheck/internal/xmi"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"loose_type_match":   false,
		"output_format":      "text",
		"color":              "auto",
		"log_level":          "warn",
		"fail_on_findings":   true,
		"max_document_bytes": int64(xmi.DefaultMaxBytes),
		"watch_debounce_ms":  300,
		"show_progress":      true,
	}
}
