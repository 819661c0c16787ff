// Package vcs checks branch and tag existence against a remote
// version-control host. Two interchangeable implementations exist: one
// speaking the git wire protocol directly and one using a hosted REST API.
package vcs

import "context"

// Validator answers ref-existence and ref-listing questions for a repo.
// Repo identifiers are whatever the deployment uses to address repositories
// on its host (clone URLs for the git implementation, "org/name" slugs for
// the hosted API).
type Validator interface {
	BranchExists(ctx context.Context, repo, branch string) (bool, error)
	ListBranches(ctx context.Context, repo string) ([]string, error)
	ListTags(ctx context.Context, repo string) ([]string, error)
}
