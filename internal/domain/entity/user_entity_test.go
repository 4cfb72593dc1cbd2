package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_ResetLifecycle(t *testing.T) {
	now := time.Now()
	u := &User{ID: "u1", Email: "a@x.com"}

	assert.False(t, u.ResetPending(now))

	u.SetResetToken("tok", now.Add(time.Minute))
	assert.True(t, u.ResetPending(now))
	assert.False(t, u.ResetPending(now.Add(2*time.Minute)), "expired token is not pending")

	u.ClearResetToken()
	assert.Nil(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiration)
	assert.False(t, u.ResetPending(now))
}
