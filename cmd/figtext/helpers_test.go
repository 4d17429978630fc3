package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const onboardingJSON = `{
  "name": "Onboarding",
  "document": {
    "id": "0:0",
    "type": "DOCUMENT",
    "children": [
      {
        "id": "0:1",
        "name": "Screens",
        "type": "CANVAS",
        "children": [
          {
            "id": "1:1",
            "name": "Login",
            "type": "FRAME",
            "children": [
              {"id": "1:2", "name": "Title", "type": "TEXT", "characters": "Welcome"},
              {"id": "1:3", "name": "Old", "type": "TEXT", "characters": "Legacy", "visible": false},
              {
                "id": "1:4",
                "name": "Btn",
                "type": "INSTANCE",
                "componentId": "2:1",
                "children": [
                  {"id": "I1:4;2:2", "name": "Label", "type": "TEXT", "characters": "Submit"}
                ]
              }
            ]
          },
          {
            "id": "3:1",
            "name": "WIP Signup",
            "type": "SECTION",
            "children": [
              {"id": "3:2", "name": "Draft", "type": "TEXT", "characters": "Coming soon"}
            ]
          }
        ]
      }
    ]
  },
  "components": {
    "2:1": {"key": "abc", "name": "ButtonComp"}
  }
}`

// writeFixture writes content to name inside a fresh temp dir.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
