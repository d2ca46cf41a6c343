// Package pkg provides the libraries behind readmequest.
//
// # Overview
//
// readmequest keeps a "gamified" GitHub profile README up to date. The pkg
// directory is organized by concern:
//
//  1. [progress] - level arithmetic and text progress bars
//  2. [document] - locating and replacing elements in README markup
//  3. [experience] - the experience counter and level/exp lines
//  4. [skills] - repository aggregation and the skill table
//  5. [readme] - the skills section
//  6. [pipeline] - orchestration (experience → skills → README)
//  7. [integrations] - the GitHub API client, cache and errors
//
// # Data Flow
//
//	README.md ──► [experience] ──► README.md (written)
//	                                  │
//	GitHub API ──► [skills] ──► table ┴─► [readme] ──► README.md (written)
package pkg
