// Package language maps file extensions to languages and aggregates
// per-repository language statistics.
package language

import (
	"math"

	"github.com/repolens/repolens/internal/analysis"
)

// Unknown is returned for paths without a mapped extension. Unknown files
// are excluded from aggregate statistics entirely.
const Unknown = "Unknown"

// extToLanguage is the static extension table. Lookup is case-insensitive.
var extToLanguage = map[string]string{
	".py":  "Python",
	".pyx": "Python",
	".pyi": "Python",

	".js":  "JavaScript",
	".jsx": "JavaScript",
	".mjs": "JavaScript",
	".cjs": "JavaScript",
	".ts":  "TypeScript",
	".tsx": "TypeScript",

	".java": "Java",
	".go":   "Go",
	".rs":   "Rust",

	".c":   "C",
	".h":   "C",
	".cpp": "C++",
	".cc":  "C++",
	".cxx": "C++",
	".hpp": "C++",
	".hh":  "C++",
	".hxx": "C++",
	".cs":  "C#",

	".html": "HTML",
	".htm":  "HTML",
	".css":  "CSS",
	".scss": "SCSS",
	".sass": "SCSS",
	".less": "CSS",

	".sh":   "Shell",
	".bash": "Shell",
	".zsh":  "Shell",

	".yaml": "YAML",
	".yml":  "YAML",
	".json": "JSON",
	".xml":  "XML",
	".toml": "TOML",

	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".kts":   "Kotlin",
	".scala": "Scala",
	".r":     "R",
	".sql":   "SQL",

	".md":       "Markdown",
	".markdown": "Markdown",
}

// Classify returns the language for a file path, or Unknown when the path
// has no dot or an unmapped extension.
func Classify(path string) string {
	ext := analysis.ExtOf(path)
	if ext == "" {
		return Unknown
	}
	if lang, ok := extToLanguage[ext]; ok {
		return lang
	}
	return Unknown
}

// LanguageStat holds the per-language aggregate for one analysis run.
type LanguageStat struct {
	Files      int     `json:"files"`
	Lines      int     `json:"lines"`
	Percentage float64 `json:"percentage"`
}

// Stats is the repository-level language summary. Primary is empty when no
// file classified — a valid terminal state, not an error.
type Stats struct {
	Languages  map[string]LanguageStat `json:"languages"`
	Primary    string                  `json:"primary_language,omitempty"`
	TotalFiles int                     `json:"total_files"`
}

// Aggregate computes language statistics over the given records.
// Percentages are file-count based and rounded to two decimals; they need
// not sum to exactly 100. The primary language is the one with the most
// files, ties broken by whichever language was encountered first.
func Aggregate(records []analysis.FileRecord) Stats {
	fileCounts := map[string]int{}
	lineCounts := map[string]int{}
	var order []string
	total := 0

	for _, r := range records {
		lang := Classify(r.Path)
		if lang == Unknown {
			continue
		}
		if fileCounts[lang] == 0 {
			order = append(order, lang)
		}
		fileCounts[lang]++
		lineCounts[lang] += analysis.CountNonBlankLines(r.Content)
		total++
	}

	if total == 0 {
		return Stats{Languages: map[string]LanguageStat{}}
	}

	stats := Stats{
		Languages:  make(map[string]LanguageStat, len(fileCounts)),
		TotalFiles: total,
	}
	for lang, n := range fileCounts {
		stats.Languages[lang] = LanguageStat{
			Files:      n,
			Lines:      lineCounts[lang],
			Percentage: round2(float64(n) / float64(total) * 100),
		}
	}

	best := -1
	for _, lang := range order {
		if fileCounts[lang] > best {
			best = fileCounts[lang]
			stats.Primary = lang
		}
	}
	return stats
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
