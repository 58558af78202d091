package folio

// DefaultCategories is the fixed category registry. Categories are not
// derived from posts; editing this table is the only way to add one.
func DefaultCategories() []Category {
	return []Category{
		{
			ID:          "cybersecurity",
			Name:        "Cybersecurity",
			Slug:        "cybersecurity",
			Description: "Security research, vulnerabilities, and best practices",
			Color:       "bg-red-600",
			Icon:        "🔒",
		},
		{
			ID:          "software-development",
			Name:        "Software Development",
			Slug:        "software-development",
			Description: "Programming, tools, and development practices",
			Color:       "bg-blue-600",
			Icon:        "💻",
		},
		{
			ID:          "research",
			Name:        "Research",
			Slug:        "research",
			Description: "Academic research and publications",
			Color:       "bg-purple-600",
			Icon:        "🔬",
		},
		{
			ID:          "career",
			Name:        "Career",
			Slug:        "career",
			Description: "Professional development and career insights",
			Color:       "bg-green-600",
			Icon:        "🚀",
		},
		{
			ID:          "personal",
			Name:        "Personal",
			Slug:        "personal",
			Description: "Personal thoughts and experiences",
			Color:       "bg-yellow-600",
			Icon:        "👤",
		},
	}
}
