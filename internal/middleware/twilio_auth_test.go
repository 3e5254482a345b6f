package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthToken = "test-auth-token"

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhook/whatsapp", ValidateTwilioSignature(testAuthToken), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postSigned(t *testing.T, app *fiber.App, form url.Values, signature string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if signature != "" {
		req.Header.Set("X-Twilio-Signature", signature)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestValidSignaturePasses(t *testing.T) {
	app := newProtectedApp()

	form := url.Values{}
	form.Set("From", "whatsapp:+15550001")
	form.Set("Body", "hi")

	signature := CalculateTwilioSignature(testAuthToken,
		"http://example.com/webhook/whatsapp",
		map[string]string{"From": "whatsapp:+15550001", "Body": "hi"})

	resp := postSigned(t, app, form, signature)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMissingSignatureRejected(t *testing.T) {
	app := newProtectedApp()

	resp := postSigned(t, app, url.Values{"Body": {"hi"}}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWrongSignatureRejected(t *testing.T) {
	app := newProtectedApp()

	resp := postSigned(t, app, url.Values{"Body": {"hi"}}, "bogus")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
