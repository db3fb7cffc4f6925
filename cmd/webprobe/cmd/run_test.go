package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCampaignSpecYAML(t *testing.T) {
	doc := []byte(`
target_url: https://example.com/game
candidates: 12
execute: 4
categories:
  - functional
  - performance
`)

	var spec campaignSpec
	require.NoError(t, yaml.Unmarshal(doc, &spec))

	assert.Equal(t, "https://example.com/game", spec.TargetURL)
	assert.Equal(t, 12, spec.Candidates)
	assert.Equal(t, 4, spec.Execute)
	assert.Equal(t, []string{"functional", "performance"}, spec.Categories)
}

func TestCampaignSpecPartialFileKeepsDefaults(t *testing.T) {
	// A campaign file that only sets the URL must not zero the counts it
	// omits when unmarshaled over pre-populated defaults.
	spec := campaignSpec{
		TargetURL:  "",
		Candidates: 10,
		Execute:    5,
		Categories: []string{"functional"},
	}

	require.NoError(t, yaml.Unmarshal([]byte("target_url: https://example.com\n"), &spec))

	assert.Equal(t, "https://example.com", spec.TargetURL)
	assert.Equal(t, 10, spec.Candidates)
	assert.Equal(t, 5, spec.Execute)
	assert.Equal(t, []string{"functional"}, spec.Categories)
}

func TestVersionCommandOutput(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "webprobe 1.2.3")
	assert.Contains(t, out.String(), "abc123")
}
