package vcs

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
)

func TestShortNames(t *testing.T) {
	refs := []*plumbing.Reference{
		plumbing.NewHashReference("refs/heads/main", plumbing.ZeroHash),
		plumbing.NewHashReference("refs/heads/release/1.2", plumbing.ZeroHash),
		plumbing.NewHashReference("refs/tags/v1.0.0", plumbing.ZeroHash),
		plumbing.NewHashReference("refs/tags/v1.0.0^{}", plumbing.ZeroHash),
		plumbing.NewSymbolicReference("HEAD", "refs/heads/main"),
	}

	branches := shortNames(refs, func(n plumbing.ReferenceName) bool { return n.IsBranch() })
	assert.Equal(t, []string{"main", "release/1.2"}, branches)

	tags := shortNames(refs, func(n plumbing.ReferenceName) bool { return n.IsTag() })
	assert.Equal(t, []string{"v1.0.0"}, tags, "peeled entries are dropped")
}
