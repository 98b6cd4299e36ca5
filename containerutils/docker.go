// Package containerutils inspects the local container runtime.
//
// It is a soft dependency of the post-provision verification: docker may be
// unavailable (remote backend, CI sandbox, no socket access), so every
// function here is best-effort and callers map failures to warnings rather
// than hard errors.
package containerutils

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// execTimeout bounds a single docker invocation.
const execTimeout = 5 * time.Second

// ContainerInfo is one entry from the runtime's live process list.
type ContainerInfo struct {
	Name   string
	Status string
}

// ListContainers returns the name/status pairs of all running containers,
// as reported by `docker ps`.
func ListContainers(ctx context.Context) ([]ContainerInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "ps", "--format", "{{.Names}}\t{{.Status}}")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("docker ps failed: %w", err)
	}
	return parseContainerList(string(output)), nil
}

func parseContainerList(output string) []ContainerInfo {
	var containers []ContainerInfo
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		name, status, _ := strings.Cut(line, "\t")
		containers = append(containers, ContainerInfo{Name: name, Status: status})
	}
	return containers
}

// FindByPrefix returns the first running container whose name contains the
// given prefix, or nil if none matches.
func FindByPrefix(ctx context.Context, prefix string) (*ContainerInfo, error) {
	containers, err := ListContainers(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range containers {
		if strings.Contains(c.Name, prefix) {
			return &c, nil
		}
	}
	return nil, nil
}
