package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ResetPassword(t *testing.T) {
	link := "http://localhost:3000/reset-password?token=abc.def.ghi&id=u1"
	subject, text, html, err := Render(ResetPassword, ResetPasswordData{
		Email:     "a@x.com",
		Link:      link,
		ExpiresIn: 3 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, "You requested a reset password request", subject)
	assert.Contains(t, text, link)
	assert.Contains(t, text, "within 3 minutes")
	assert.Contains(t, html, "reset-password?token=abc.def.ghi&amp;id=u1")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
