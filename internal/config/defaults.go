package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"engine_cmd":     "xslt3 -xsl:{{XSL}} -s:{{XML}} -o:{{OUT}}",
		"schematron_dir": "./schematron",
		"stylesheet_dir": "./iso_transformers",
		"output_dir":     "./xslt_schematron",
		"cache_dir":      "./.cache",
		"temp_dir":       "./.temp",
		"results_dir":    "./results",
		"show_progress":  true,

		// Large files should validate in under a minute.
		"goal_size_mb":      50.0,
		"goal_time_seconds": 60.0,

		"fatal_keywords":   []string{"fatal", "critical", "must not", "required"},
		"error_keywords":   []string{"error", "invalid", "violation", "shall not"},
		"warning_keywords": []string{"warning", "should", "recommend"},
		"info_keywords":    []string{"info", "information", "note"},
	}
}
