package entities

// PullRequest holds the fields of a hosted pull request that the policy reads.
type PullRequest struct {
	Number      int
	Title       string
	AuthorLogin string
	HeadRef     string
}

// Commit holds the authorship and verification data of one pull request commit.
type Commit struct {
	SHA           string
	AuthorLogin   string
	AuthorName    string
	CommitterName string
	Verified      bool
}

// MergeMethod is the strategy used when merging an approved pull request.
type MergeMethod string

const (
	MergeMethodMerge  MergeMethod = "merge"
	MergeMethodSquash MergeMethod = "squash"
	MergeMethodRebase MergeMethod = "rebase"
)

// IsValid reports whether the merge method is supported by the hosting API.
func (m MergeMethod) IsValid() bool {
	switch m {
	case MergeMethodMerge, MergeMethodSquash, MergeMethodRebase:
		return true
	default:
		return false
	}
}
