package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/chious/readmequest/pkg/document"
	"github.com/chious/readmequest/pkg/experience"
	"github.com/chious/readmequest/pkg/observability"
	"github.com/chious/readmequest/pkg/readme"
	"github.com/chious/readmequest/pkg/skills"
)

// Runner executes README update runs.
//
// The Runner holds no per-run state, so one Runner can serve several
// runs with different options.
type Runner struct {
	Lister skills.RepoLister
	Logger *log.Logger
}

// NewRunner creates a runner that lists repositories through lister.
// If logger is nil, output is discarded.
func NewRunner(lister skills.RepoLister, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Lister: lister, Logger: logger}
}

// Run executes the experience → skills → README stages.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	report := &Report{RunID: uuid.NewString()}
	logger := r.Logger.With("run", report.RunID[:8])

	content, err := document.ReadFile(opts.ReadmePath)
	if err != nil {
		return nil, err
	}
	report.Content = content

	// Stage 1: Experience
	if !opts.SkipExp {
		start := time.Now()
		err := stage(ctx, StageExperience, func() error {
			return r.runExperience(opts, logger, report)
		})
		report.Stats.ExperienceTime = time.Since(start)
		if err != nil {
			return report, fmt.Errorf("experience: %w", err)
		}
	}

	if opts.SkipSkills {
		return report, nil
	}

	// Stage 2: Skills
	start := time.Now()
	err = stage(ctx, StageSkills, func() error {
		report.Fetch = skills.Fetch(ctx, r.Lister, opts.Account, skills.FetchOptions{
			List:   opts.List,
			Filter: opts.Filter,
			Logger: logger,
		})
		return report.Fetch.Err
	})
	report.Stats.SkillsTime = time.Since(start)
	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	switch report.Fetch.Status {
	case skills.StatusFailed:
		logger.Warn("rendering empty skill table", "err", err)
	case skills.StatusEmpty:
		logger.Warn("no repository languages found", "account", opts.Account)
	default:
		logger.Info("aggregated languages",
			"repos", report.Fetch.Repos,
			"languages", len(report.Fetch.Stats),
			"cached", report.Fetch.Cached,
			"duration", report.Stats.SkillsTime)
	}

	// Stage 3: README
	start = time.Now()
	err = stage(ctx, StageReadme, func() error {
		return r.runReadme(opts, logger, report)
	})
	report.Stats.ReadmeTime = time.Since(start)
	if err != nil {
		return report, fmt.Errorf("readme: %w", err)
	}
	return report, nil
}

func (r *Runner) runExperience(opts Options, logger *log.Logger, report *Report) error {
	res, err := experience.Update(report.Content, experience.Options{
		Cap:      opts.ExpCap,
		BarWidth: opts.BarWidth,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	report.Experience = res
	if !res.Matched {
		logger.Warn("no experience counter found", "readme", opts.ReadmePath, "cap", res.Cap)
		return nil
	}

	logger.Info("experience updated",
		"exp", fmt.Sprintf("%d → %d", res.Old, res.New),
		"percent", res.Percent+"%",
		"level", res.Level.Current)

	report.Content = res.Content
	if opts.DryRun {
		return nil
	}
	if err := document.WriteFile(opts.ReadmePath, res.Content); err != nil {
		return err
	}
	report.Written = append(report.Written, StageExperience)
	return nil
}

func (r *Runner) runReadme(opts Options, logger *log.Logger, report *Report) error {
	report.Table = skills.Table(report.Fetch.Stats, opts.Table)
	report.Section = readme.RenderSectionID(opts.SectionID, report.Table, opts.Now().In(opts.Location))

	updated, err := readme.ReplaceSection(report.Content, opts.SectionID, report.Section)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.ReadmePath, err)
	}
	report.Content = updated
	if opts.DryRun {
		logger.Info("dry run, README not written", "readme", opts.ReadmePath)
		return nil
	}
	if err := document.WriteFile(opts.ReadmePath, updated); err != nil {
		return err
	}
	report.Written = append(report.Written, StageReadme)
	logger.Info("README updated", "readme", opts.ReadmePath, "section", opts.SectionID)
	return nil
}

// stage runs fn between the observability start/complete events.
func stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	hooks.OnStageComplete(ctx, name, time.Since(start), err)
	return err
}
