// Package github lists a GitHub account's repositories through the REST API.
//
// # Usage
//
//	client := github.NewClient(github.Options{Token: os.Getenv("GITHUB_TOKEN")})
//	listing, err := client.ListUserRepos(ctx, "chious", github.ListOptions{})
//	if err != nil {
//	    return err
//	}
//	for _, r := range listing.Repos {
//	    fmt.Println(r.Name, r.Language, r.Size)
//	}
//
// # Authentication
//
// A token is optional. Without one the API allows 60 requests/hour per IP,
// which a scheduled README refresh shares with every other job on the same
// runner; with one the limit is 5000 requests/hour. Anonymous and
// authenticated listings are cached under separate keys.
//
// # Pagination
//
// The endpoint returns at most [MaxPerPage] repositories per page.
// ListUserRepos follows pages until one comes back short or
// [ListOptions.MaxPages] is reached.
package github
