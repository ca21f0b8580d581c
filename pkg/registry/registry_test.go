// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeRegistryFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistryFile(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-01",
		"activities": [
			{
				"id": "leads.find-decision-maker",
				"displayName": "Find Decision Maker",
				"taskType": "find-decision-maker",
				"category": "leads",
				"errorCodes": ["INVALID_LEAD_INPUT", "LEAD_PERSIST_FAILED"]
			}
		]
	}`)

	reg, err := LoadRegistry(path)

	assert.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	assert.Len(t, reg.Activities, 1)
	assert.Equal(t, "find-decision-maker", reg.Activities[0].TaskType)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry("/nonexistent/registry.json")
	assert.Error(t, err)
}

func TestFindByTaskType(t *testing.T) {
	reg := &ActivityRegistry{
		Activities: []Activity{
			{ID: "leads.find-decision-maker", TaskType: "find-decision-maker"},
		},
	}

	activity, err := reg.FindByTaskType("find-decision-maker")
	assert.NoError(t, err)
	assert.Equal(t, "leads.find-decision-maker", activity.ID)

	_, err = reg.FindByTaskType("unknown-task")
	assert.Error(t, err)
}
