package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKnownTemplates(t *testing.T) {
	ts := NewTemplateService()

	t.Run("without arguments", func(t *testing.T) {
		body, err := ts.Render(TemplateGreeting)
		require.NoError(t, err)
		assert.Contains(t, body, "name")
	})

	t.Run("with name argument", func(t *testing.T) {
		body, err := ts.Render(TemplateNameReceived, "Alice")
		require.NoError(t, err)
		assert.Contains(t, body, "Alice")

		body, err = ts.Render(TemplateCompleted, "Alice")
		require.NoError(t, err)
		assert.Contains(t, body, "Alice")
	})
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	ts := NewTemplateService()

	_, err := ts.Render("no_such_template")
	require.Error(t, err)
}
