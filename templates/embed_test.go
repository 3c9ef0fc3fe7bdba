package templates

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGuide_IsValidJSON(t *testing.T) {
	guide, err := Guide()
	if err != nil {
		t.Fatalf("failed to load guide: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(guide), &parsed); err != nil {
		t.Fatalf("guide is not valid JSON: %v", err)
	}

	for _, key := range []string{"project", "available_tools", "recommended_workflow", "response_envelope"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("guide is missing the %s section", key)
		}
	}
}

func TestAPIDoc_CoversNavigationPaths(t *testing.T) {
	doc, err := APIDoc()
	if err != nil {
		t.Fatalf("failed to load api doc: %v", err)
	}

	// The embedded document must keep the heading structure the guide's
	// navigation examples point at.
	for _, heading := range []string{
		"# API",
		"## Generate a completion",
		"### Parameters",
		"## Generate Embeddings",
		"## Version",
	} {
		if !strings.Contains(doc, heading+"\n") {
			t.Errorf("api doc is missing heading %q", heading)
		}
	}
}
