package vcs

import (
	"context"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/utils"
)

// GitRemoteValidator lists refs straight off the remote, the equivalent of
// `git ls-remote --heads/--tags <url>`. Repo identifiers are clone URLs.
type GitRemoteValidator struct {
	// Token, when set, authenticates remote listing over HTTP.
	Token string
}

func NewGitRemoteValidator(token string) *GitRemoteValidator {
	return &GitRemoteValidator{Token: token}
}

func (v *GitRemoteValidator) listRefs(ctx context.Context, repo string) ([]*plumbing.Reference, error) {
	url := utils.EnsureSuffix(repo, ".git")
	rem := gogit.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})
	opts := &gogit.ListOptions{}
	if v.Token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "token", Password: v.Token}
	}
	refs, err := rem.ListContext(ctx, opts)
	if err != nil {
		return nil, entity.WrapError(entity.ReasonExternalUnavailable, err)
	}
	return refs, nil
}

// BranchExists implements Validator.
func (v *GitRemoteValidator) BranchExists(ctx context.Context, repo, branch string) (bool, error) {
	branches, err := v.ListBranches(ctx, repo)
	if err != nil {
		return false, err
	}
	for _, b := range branches {
		if b == branch {
			return true, nil
		}
	}
	return false, nil
}

// ListBranches implements Validator.
func (v *GitRemoteValidator) ListBranches(ctx context.Context, repo string) ([]string, error) {
	refs, err := v.listRefs(ctx, repo)
	if err != nil {
		return nil, err
	}
	return shortNames(refs, func(n plumbing.ReferenceName) bool { return n.IsBranch() }), nil
}

// ListTags implements Validator.
func (v *GitRemoteValidator) ListTags(ctx context.Context, repo string) ([]string, error) {
	refs, err := v.listRefs(ctx, repo)
	if err != nil {
		return nil, err
	}
	return shortNames(refs, func(n plumbing.ReferenceName) bool { return n.IsTag() }), nil
}

func shortNames(refs []*plumbing.Reference, keep func(plumbing.ReferenceName) bool) []string {
	var names []string
	for _, ref := range refs {
		name := ref.Name()
		// Skip peeled annotated-tag entries.
		if strings.HasSuffix(name.String(), "^{}") {
			continue
		}
		if keep(name) {
			names = append(names, name.Short())
		}
	}
	return names
}
