package entities

import (
	"fmt"
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// ParseRepository turns an "owner/name" slug into a Repository.
func ParseRepository(slug string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(slug), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("invalid repository %q: expected \"owner/name\"", slug)
	}
	return Repository{
		ID:           owner + "/" + name,
		Name:         name,
		Organization: owner,
		ProviderName: "github",
	}, nil
}
