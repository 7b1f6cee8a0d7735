package parsing

import (
	"github.com/go-playground/validator/v10"
)

// EmptySectionPolicy controls what a section parser emits when its buffer yields nothing.
type EmptySectionPolicy string

const (
	// EmptySectionsPlaceholder injects fixed placeholder values into summary,
	// education and skills. Experience stays empty when its buffer is empty.
	EmptySectionsPlaceholder EmptySectionPolicy = "placeholder"
	// EmptySectionsEmpty leaves every empty section empty.
	EmptySectionsEmpty EmptySectionPolicy = "empty"
)

const (
	// fallbackDescriptionRunes bounds the description of a synthesized experience entry.
	fallbackDescriptionRunes = 200
	// fallbackResponsibilities bounds the responsibilities of a synthesized experience entry.
	fallbackResponsibilities = 5
)

// Keywords holds the lowercase substrings that open each section.
type Keywords struct {
	Summary    []string `json:"summary" yaml:"summary" validate:"required,min=1,dive,required"`
	Experience []string `json:"experience" yaml:"experience" validate:"required,min=1,dive,required"`
	Education  []string `json:"education" yaml:"education" validate:"required,min=1,dive,required"`
	Skills     []string `json:"skills" yaml:"skills" validate:"required,min=1,dive,required"`
}

// Defaults holds the placeholder strings injected when extraction finds nothing.
type Defaults struct {
	Summary          string   `json:"summary" yaml:"summary" validate:"required"`
	JobTitle         string   `json:"job_title" yaml:"job_title" validate:"required"`
	Company          string   `json:"company" yaml:"company" validate:"required"`
	Duration         string   `json:"duration" yaml:"duration" validate:"required"`
	FallbackTitle    string   `json:"fallback_title" yaml:"fallback_title" validate:"required"`
	FallbackDuration string   `json:"fallback_duration" yaml:"fallback_duration" validate:"required"`
	Degree           string   `json:"degree" yaml:"degree" validate:"required"`
	Institution      string   `json:"institution" yaml:"institution" validate:"required"`
	Year             string   `json:"year" yaml:"year" validate:"required"`
	Location         string   `json:"location" yaml:"location" validate:"required"`
	Skills           []string `json:"skills" yaml:"skills" validate:"required,min=1,max=15,dive,required"`
}

// Options configures a Parser. The zero value is not usable; start from
// DefaultOptions or DocxOptions.
type Options struct {
	Keywords Keywords `json:"keywords" yaml:"keywords"`
	Defaults Defaults `json:"defaults" yaml:"defaults"`

	EmptySections EmptySectionPolicy `json:"empty_sections" yaml:"empty_sections" validate:"oneof=placeholder empty"`

	// MaxKeywordLineLength limits which lines may act as section headers.
	// Zero means any length.
	MaxKeywordLineLength int `json:"max_keyword_line_length" yaml:"max_keyword_line_length" validate:"gte=0"`

	// LocationFromPhone fills Location with Defaults.Location when a phone
	// number was found. Off by default: a phone number says nothing about location.
	LocationFromPhone bool `json:"location_from_phone" yaml:"location_from_phone"`

	// NormalizeSkills maps well-known skill spellings to canonical names and drops duplicates.
	NormalizeSkills bool `json:"normalize_skills" yaml:"normalize_skills"`

	// SkillAliases adds to or overrides the built-in skill spellings used when
	// NormalizeSkills is set. Keys match case-insensitively.
	SkillAliases map[string]string `json:"skill_aliases,omitempty" yaml:"skill_aliases,omitempty" validate:"dive,keys,required,endkeys,required"`
}

// DefaultOptions returns the options of the plain-text parser.
func DefaultOptions() Options {
	return Options{
		Keywords: Keywords{
			Summary:    []string{"summary", "profile", "objective"},
			Experience: []string{"experience", "employment", "work history"},
			Education:  []string{"education", "academic"},
			Skills:     []string{"skills", "competencies", "expertise"},
		},
		Defaults: Defaults{
			Summary:          "Experienced professional with a proven track record of delivering high-quality results.",
			JobTitle:         "Professional Position",
			Company:          "Professional Organization",
			Duration:         "Recent",
			FallbackTitle:    "Professional Experience",
			FallbackDuration: "Recent Experience",
			Degree:           "Academic Qualification",
			Institution:      "Educational Institution",
			Year:             "Completed",
			Location:         "Location Available Upon Request",
			Skills:           []string{"Communication", "Problem Solving", "Teamwork", "Leadership"},
		},
		EmptySections: EmptySectionsPlaceholder,
	}
}

// DocxOptions returns the options used for text extracted from Word documents.
// Those documents carry longer heading vocabularies and only short lines are
// treated as headings.
func DocxOptions() Options {
	opts := DefaultOptions()
	opts.Keywords = Keywords{
		Summary:    []string{"summary", "objective", "profile", "about"},
		Experience: []string{"experience", "work history", "employment", "professional experience"},
		Education:  []string{"education", "academic", "university", "college"},
		Skills:     []string{"skills", "technical skills", "core competencies"},
	}
	opts.MaxKeywordLineLength = 50
	return opts
}

// Validate validates the Options using the validator.
func (o *Options) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return &ConfigError{Message: "options failed validation", Cause: err}
	}
	return nil
}
