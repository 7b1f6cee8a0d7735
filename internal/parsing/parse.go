// Package parsing provides functionality for turning free-text resumes into structured documents.
package parsing

import (
	"io"
	"maps"
	"slices"

	"github.com/jonathan/resume-structurer/internal/types"
)

// Parser converts resume text into a ResumeDocument. A Parser holds only
// read-only configuration and is safe for concurrent use.
type Parser struct {
	opts        Options
	keywordSets []keywordSet
	aliases     map[string]string
}

var defaultParser = mustNewParser(DefaultOptions())

// NewParser validates opts and returns a Parser using them.
func NewParser(opts Options) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.Defaults.Skills = slices.Clone(opts.Defaults.Skills)
	opts.SkillAliases = maps.Clone(opts.SkillAliases)
	return &Parser{
		opts:    opts,
		aliases: lowerKeys(opts.SkillAliases),
		keywordSets: []keywordSet{
			{section: sectionSummary, words: lowerAll(opts.Keywords.Summary)},
			{section: sectionExperience, words: lowerAll(opts.Keywords.Experience)},
			{section: sectionEducation, words: lowerAll(opts.Keywords.Education)},
			{section: sectionSkills, words: lowerAll(opts.Keywords.Skills)},
		},
	}, nil
}

func mustNewParser(opts Options) *Parser {
	p, err := NewParser(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Options returns a copy of the parser's options.
func (p *Parser) Options() Options {
	opts := p.opts
	opts.Defaults.Skills = slices.Clone(p.opts.Defaults.Skills)
	opts.SkillAliases = maps.Clone(p.opts.SkillAliases)
	return opts
}

// Parse structures text with the default options.
func Parse(text string) *types.ResumeDocument {
	return defaultParser.Parse(text)
}

// IsLowConfidence reports whether doc carries nothing but default-option placeholders.
func IsLowConfidence(doc *types.ResumeDocument) bool {
	return defaultParser.IsLowConfidence(doc)
}

// Parse structures text in a single pass. It never fails: anything it cannot
// find is left empty or replaced by a placeholder.
func (p *Parser) Parse(text string) *types.ResumeDocument {
	doc := types.NewResumeDocument()
	current := sectionHeader
	var buf segments

	for _, line := range SplitLines(text) {
		scanContact(doc, line)

		if sec, ok := p.classify(line); ok {
			current = sec
			continue
		}
		if current == sectionHeader {
			if doc.Name == "" && isNameCandidate(line) {
				doc.Name = line
			}
			continue
		}
		buf.add(current, line)
	}

	doc.Summary = p.assembleSummary(buf.summary)
	doc.Experience = p.parseExperience(buf.experience)
	doc.Education = p.parseEducation(buf.education)
	doc.Skills = p.parseSkills(buf.skills)

	if len(doc.Experience) > 0 {
		doc.Title = doc.Experience[0].Title
	}
	if p.opts.LocationFromPhone && doc.Phone != "" && doc.Location == "" {
		doc.Location = p.opts.Defaults.Location
	}
	return doc
}

// ParseReader reads all of r and parses it. A nil reader is rejected with
// ErrInvalidInput before any parsing happens.
func (p *Parser) ParseReader(r io.Reader) (*types.ResumeDocument, error) {
	if r == nil {
		return nil, ErrInvalidInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Message: "failed to read resume text", Cause: err}
	}
	return p.Parse(string(data)), nil
}

// IsLowConfidence reports whether doc carries no extracted information, only
// empty values and this parser's placeholders.
func (p *Parser) IsLowConfidence(doc *types.ResumeDocument) bool {
	if doc == nil {
		return true
	}
	if doc.Name != "" || doc.Email != "" || doc.Phone != "" || doc.LinkedIn != "" {
		return false
	}
	if len(doc.Experience) > 0 {
		return false
	}
	placeholder := p.defaultEducation()
	for _, e := range doc.Education {
		if e != placeholder {
			return false
		}
	}
	if len(doc.Skills) > 0 && !slices.Equal(doc.Skills, p.opts.Defaults.Skills) {
		return false
	}
	return doc.Summary == "" || doc.Summary == p.opts.Defaults.Summary
}
