// Package pipeline runs a complete README update.
//
// A run has three stages executed strictly in order:
//
//  1. Experience: increment the counter and rewrite the level/exp items.
//     The result is written to disk before the next stage starts.
//  2. Skills: list the account's repositories and aggregate languages.
//  3. README: render the skill table and replace the skills section.
//
// Only two failures are tolerated: a README without an experience counter
// (the stage is a no-op) and a failed repository listing (the table is
// rendered empty). Everything else aborts the run.
//
// # Usage
//
//	runner := pipeline.NewRunner(githubClient, logger)
//	report, err := runner.Run(ctx, pipeline.Options{
//	    ReadmePath: "README.md",
//	    Account:    "octocat",
//	})
package pipeline

import (
	"time"

	apperrors "github.com/chious/readmequest/pkg/errors"
	"github.com/chious/readmequest/pkg/experience"
	"github.com/chious/readmequest/pkg/integrations/github"
	"github.com/chious/readmequest/pkg/readme"
	"github.com/chious/readmequest/pkg/skills"
)

// Stage names reported to observability hooks.
const (
	StageExperience = "experience"
	StageSkills     = "skills"
	StageReadme     = "readme"
)

// Options contains all configuration for one run.
type Options struct {
	ReadmePath string
	Account    string
	SectionID  string // defaults to readme.DefaultSectionID

	ExpCap   int
	BarWidth int
	Table    skills.TableOptions
	List     github.ListOptions
	Filter   skills.Filter

	Location *time.Location   // zone of the "Last updated" line; nil means local
	Now      func() time.Time // clock override for tests

	SkipExp    bool
	SkipSkills bool
	DryRun     bool // compute everything, write nothing
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := apperrors.ValidateReadmePath(o.ReadmePath); err != nil {
		return err
	}
	if !o.SkipSkills {
		if err := apperrors.ValidateAccountName(o.Account); err != nil {
			return err
		}
	}
	if o.SectionID == "" {
		o.SectionID = readme.DefaultSectionID
	}
	if o.ExpCap <= 0 {
		o.ExpCap = experience.DefaultCap
	}
	if o.Table.BarWidth <= 0 {
		o.Table.BarWidth = o.BarWidth
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return nil
}

// Report describes what a run did.
type Report struct {
	RunID string

	// Experience is the zero value when the stage was skipped.
	Experience experience.Result

	// Fetch, Table and Section are empty when the skills stage was skipped.
	Fetch   skills.FetchResult
	Table   string
	Section string

	// Content is the final document, whether or not it was written.
	Content string

	// Written lists the stages whose output reached disk.
	Written []string

	Stats Stats
}

// Stats contains stage timings.
type Stats struct {
	ExperienceTime time.Duration
	SkillsTime     time.Duration
	ReadmeTime     time.Duration
}
