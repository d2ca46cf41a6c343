package github

// Repo is the subset of a repository record the skill table needs.
// Language is empty when GitHub could not detect one (JSON null).
type Repo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Language string `json:"language"`
	Size     int    `json:"size"` // kilobytes, as reported by GitHub
	Fork     bool   `json:"fork"`
	Archived bool   `json:"archived"`
	Private  bool   `json:"private"`
}

// Listing is the result of [Client.ListUserRepos].
type Listing struct {
	Account string `json:"account"`
	Repos   []Repo `json:"repos"`
	Pages   int    `json:"pages"`
	Cached  bool   `json:"-"`
}
