// Package readme renders the skills section and splices it into a README.
package readme

import (
	"errors"
	"fmt"
	"time"

	"github.com/chious/readmequest/pkg/document"
	apperrors "github.com/chious/readmequest/pkg/errors"
)

const (
	// DefaultSectionID is the id of the <section> holding the skill table.
	DefaultSectionID = "skills-section"

	// TimestampLayout formats the "Last updated" line.
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

// RenderSection wraps table in the skills section markup with id
// DefaultSectionID.
func RenderSection(table string, now time.Time) string {
	return RenderSectionID(DefaultSectionID, table, now)
}

// RenderSectionID is [RenderSection] with a custom section id.
func RenderSectionID(id, table string, now time.Time) string {
	return fmt.Sprintf("<section id=\"%s\">\n"+
		"<h2 style=\"color:#D9934C\"> 📊 Top Skills</h2>\n\n"+
		"%s\n"+
		"_Generated by GitHub API_\n\n"+
		"Last updated: %s\n\n"+
		"</section>", id, table, now.Format(TimestampLayout))
}

// ReplaceSection replaces the <section> element with the given id, tags
// included, by section. Nested sections inside it are part of the replaced
// span. On error content is returned unchanged.
func ReplaceSection(content, id, section string) (string, error) {
	span, err := document.Find(content, document.Selector{Tag: "section", ID: id})
	switch {
	case errors.Is(err, document.ErrNotFound):
		return content, apperrors.Wrap(apperrors.ErrCodeSectionNotFound, err, "section %q", id)
	case errors.Is(err, document.ErrUnclosed):
		return content, apperrors.Wrap(apperrors.ErrCodeSectionUnclosed, err, "section %q", id)
	case err != nil:
		return content, err
	}
	return span.Replace(content, section), nil
}

// UpdateFile replaces the section in the document at path and writes the
// result back. The file is left untouched when the section is missing.
func UpdateFile(path, id, section string) error {
	content, err := document.ReadFile(path)
	if err != nil {
		return err
	}
	updated, err := ReplaceSection(content, id, section)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if updated == content {
		return nil
	}
	return document.WriteFile(path, updated)
}
