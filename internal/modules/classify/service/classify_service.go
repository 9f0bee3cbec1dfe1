package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"tally/internal/modules/classify/dto"
	"tally/internal/modules/classify/port/out"
)

// ClassifyService resolves working directories to repositories and probes
// each repository once.
type ClassifyService struct {
	resolver out.RepoResolver
	probe    out.AdoptionProbe
	log      hclog.Logger
}

func NewClassifyService(resolver out.RepoResolver, probe out.AdoptionProbe, log hclog.Logger) *ClassifyService {
	return &ClassifyService{resolver: resolver, probe: probe, log: log}
}

// Resolve maps each path to its repo root, memoizing both the path lookup
// and the per-repo probes. Paths with no repository fall back to a sibling
// hub repo when they look like one of its worktrees.
func (s *ClassifyService) Resolve(ctx context.Context, paths []string) dto.ResolveOutput {
	result := dto.ResolveOutput{
		Repos:    make(map[string]dto.RepoInfo),
		PathRepo: make(map[string]string),
	}

	var orphans []string
	for _, path := range paths {
		root := s.resolver.RepoRoot(ctx, path)
		if root == "" {
			orphans = append(orphans, path)
			continue
		}
		result.PathRepo[path] = root
		if _, seen := result.Repos[root]; !seen {
			result.Repos[root] = s.probeRepo(ctx, root)
		}
	}

	hubRoot := ""
	for root, info := range result.Repos {
		if info.Name == "beadhub" {
			hubRoot = root
			break
		}
	}

	for _, path := range orphans {
		// A beadhub-<name> checkout without its own history is treated as a
		// worktree of the main hub repo.
		if hubRoot != "" && strings.HasPrefix(filepath.Base(path), "beadhub-") {
			result.PathRepo[path] = hubRoot
			continue
		}
		s.log.Debug("path resolves to no repository", "path", path)
		result.Unresolved++
	}
	return result
}

func (s *ClassifyService) probeRepo(ctx context.Context, root string) dto.RepoInfo {
	return dto.RepoInfo{
		Root:      root,
		Name:      filepath.Base(root),
		BeadsDate: s.probe.BeadsDate(ctx, root),
		Beadhub:   s.probe.IsBeadhub(ctx, root),
	}
}
