package containerutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainerList(t *testing.T) {
	output := "tenant-0a1b2c3d-gateway\tUp 2 minutes\nredis\tUp 3 hours (healthy)\n"

	containers := parseContainerList(output)
	require.Len(t, containers, 2)
	assert.Equal(t, "tenant-0a1b2c3d-gateway", containers[0].Name)
	assert.Equal(t, "Up 2 minutes", containers[0].Status)
	assert.Equal(t, "redis", containers[1].Name)
}

func TestParseContainerList_Empty(t *testing.T) {
	assert.Empty(t, parseContainerList(""))
	assert.Empty(t, parseContainerList("\n"))
}
