package enhance

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-structurer/internal/types"
)

// DocumentConcurrency bounds concurrent model calls for one document.
const DocumentConcurrency = 4

// Job is one field of a document queued for rewriting.
type Job struct {
	// Path identifies the field, e.g. "experience[1].description"
	Path    string
	Index   int
	Request Request
}

// BuildRequests lists the non-empty fields of doc that can be rewritten.
func BuildRequests(doc *types.ResumeDocument, rc Context) []Job {
	if doc == nil {
		return nil
	}

	var jobs []Job
	add := func(path string, index int, ft FieldType, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		jobs = append(jobs, Job{
			Path:    path,
			Index:   index,
			Request: Request{FieldType: ft, Content: content, Context: rc},
		})
	}

	add("title", -1, FieldTitle, doc.Title)
	add("summary", -1, FieldSummary, doc.Summary)
	for i, exp := range doc.Experience {
		add(fmt.Sprintf("experience[%d].description", i), i, FieldDescription, exp.Description)
		add(fmt.Sprintf("experience[%d].responsibilities", i), i, FieldAchievements, strings.Join(exp.Responsibilities, "\n"))
	}
	add("skills", -1, FieldSkills, strings.Join(doc.Skills, ", "))
	return jobs
}

// EnhanceDocument rewrites every eligible field of doc and returns a new
// document. The input is not modified. The first failed field cancels the rest.
func (e *Enhancer) EnhanceDocument(ctx context.Context, doc *types.ResumeDocument, rc Context) (*types.ResumeDocument, error) {
	if doc == nil {
		return nil, &ValidationError{Message: "document is required"}
	}

	jobs := BuildRequests(doc, rc)
	results := make([]*Response, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DocumentConcurrency)
	for i, job := range jobs {
		g.Go(func() error {
			resp, err := e.Enhance(gctx, job.Request)
			if err != nil {
				return fmt.Errorf("failed to enhance %s: %w", job.Path, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := copyDocument(doc)
	for i, job := range jobs {
		applyResult(out, job, results[i].EnhancedContent)
	}
	log.Printf("[enhance] rewrote %d fields", len(jobs))
	return out, nil
}

func applyResult(doc *types.ResumeDocument, job Job, content string) {
	switch job.Request.FieldType {
	case FieldTitle:
		doc.Title = content
	case FieldSummary:
		doc.Summary = content
	case FieldDescription:
		doc.Experience[job.Index].Description = content
	case FieldAchievements:
		doc.Experience[job.Index].Responsibilities = splitBullets(content)
	case FieldSkills:
		doc.Skills = splitSkills(content)
	}
}

func splitBullets(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•*-"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitSkills(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == types.MaxSkills {
			break
		}
	}
	return out
}

func copyDocument(doc *types.ResumeDocument) *types.ResumeDocument {
	out := *doc
	out.Experience = make([]types.ExperienceEntry, len(doc.Experience))
	for i, exp := range doc.Experience {
		if exp.Responsibilities != nil {
			exp.Responsibilities = append(make([]string, 0, len(exp.Responsibilities)), exp.Responsibilities...)
		}
		out.Experience[i] = exp
	}
	out.Education = append(make([]types.EducationEntry, 0, len(doc.Education)), doc.Education...)
	out.Skills = append(make([]string, 0, len(doc.Skills)), doc.Skills...)
	return &out
}
