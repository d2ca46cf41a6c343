// Package skills turns a GitHub account's repository listing into a ranked
// per-language skill table.
//
// [Fetch] lists repositories through a [RepoLister] and reduces them with
// [Aggregate]. A failed listing is reported through [FetchResult.Status]
// rather than an error so the caller can still render an empty table.
// [Table] renders the aggregate as a fixed-header markdown table:
//
//	| Skill      | Level | EXP Bar        | Usage    |
//	| ---------- | ----- | -------------- | -------- |
//	| Go         | Lv. 2 | ███████████░░░ | 80.00% |
package skills
