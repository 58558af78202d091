// Package profile holds the static portfolio data served alongside the
// blog: bio, experience, education, projects, and research. The data is
// compiled in; editing it is a code change, the same as editing a post.
package profile

// Profile is the full portfolio record returned by the profile endpoint.
type Profile struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Bio        string            `json:"bio"`
	Location   string            `json:"location"`
	Avatar     string            `json:"avatar"`
	Links      map[string]string `json:"links"`
	Experience []Experience      `json:"experience"`
	Education  []Education       `json:"education"`
	Projects   []Project         `json:"projects"`
	Awards     []Award           `json:"awards"`
	Research   []Research        `json:"research"`
	Skills     []string          `json:"skills"`
}

type Experience struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Start       string   `json:"start"`
	End         string   `json:"end,omitempty"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Notes       string `json:"notes,omitempty"`
}

type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Award struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Year        string `json:"year"`
	Description string `json:"description,omitempty"`
}

type Research struct {
	Title       string `json:"title"`
	Venue       string `json:"venue,omitempty"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// Default returns the built-in portfolio record.
func Default() Profile {
	return Profile{
		Name:     "Mustafa Cem Gülümser",
		Title:    "Senior Security Engineer",
		Bio:      "Security engineer working on application security, network defense, and industrial control system monitoring. Writes about practical security engineering, research, and the occasional career detour.",
		Location: "Istanbul, Türkiye",
		Avatar:   "/images/profile/profile.jpg",
		Links: map[string]string{
			"github":   "https://github.com/cmglmsr",
			"linkedin": "https://www.linkedin.com/in/mustafa-cem-gulumser",
		},
		Experience: []Experience{
			{
				Role:        "Senior Security Engineer",
				Company:     "Garanti BBVA",
				Start:       "2024",
				Description: "Application and infrastructure security for retail banking platforms.",
				Highlights: []string{
					"Security reviews and threat modeling for payment services",
					"Internal tooling for dependency and secret scanning",
				},
			},
			{
				Role:        "Security Engineer",
				Company:     "TR7 Cyber Security",
				Start:       "2022",
				End:         "2024",
				Description: "Web application firewall and application delivery product development.",
				Highlights: []string{
					"HTTP parsing and anomaly detection features for the TR7 ASP platform",
				},
			},
			{
				Role:        "Software Engineering Intern",
				Company:     "SunExpress",
				Start:       "2021",
				End:         "2021",
				Description: "Internal tooling for flight operations reporting.",
			},
		},
		Education: []Education{
			{
				Degree:      "MSc Software and Systems Security",
				Institution: "University of Oxford",
				Start:       "2023",
				End:         "2025",
				Notes:       "Part-time, alongside industry work.",
			},
			{
				Degree:      "BSc Computer Science",
				Institution: "Bilkent University",
				Start:       "2018",
				End:         "2022",
			},
		},
		Projects: []Project{
			{
				Name:        "RouterGuard",
				Description: "Lightweight intrusion detection for consumer routers, flagging anomalous upstream traffic without cloud dependencies.",
				URL:         "https://github.com/cmglmsr/rtguard",
				Tags:        []string{"security", "networking", "go"},
			},
			{
				Name:        "Folio",
				Description: "This site: a portfolio and blog engine serving embedded markdown content over a JSON API.",
				Tags:        []string{"go", "web"},
			},
		},
		Awards: []Award{
			{
				Title:  "Comprehensive Scholarship",
				Issuer: "Bilkent University",
				Year:   "2018",
			},
			{
				Title:       "Capture the Flag, 2nd place",
				Issuer:      "HackKaradeniz",
				Year:        "2021",
				Description: "University team competition, web and forensics tracks.",
			},
		},
		Research: []Research{
			{
				Title:       "Bayesian network anomaly detection for industrial control systems",
				Venue:       "MSc dissertation, University of Oxford",
				Year:        "2025",
				Description: "Probabilistic modeling of sensor and actuator behavior in ICS testbeds to detect process-level attacks.",
			},
		},
		Skills: []string{
			"Application security", "Network security", "Go", "TypeScript",
			"Threat modeling", "ICS/SCADA security",
		},
	}
}
