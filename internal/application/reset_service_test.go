package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetLink(t *testing.T) {
	assert.Equal(t,
		"https://books.example.com/reset-password?token=a.b.c&id=u1",
		ResetLink("https://books.example.com", "a.b.c", "u1"))
}

func TestRequestReset_PersistsTokenAndSendsLink(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	before := time.Now()

	require.NoError(t, f.reset.RequestReset(context.Background(), "a@x.io"))

	stored, err := f.users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiration)
	assert.WithinDuration(t, before.Add(3*time.Minute), *stored.ResetTokenExpiration, 2*time.Second)

	mail, ok := f.sender.last()
	require.True(t, ok)
	assert.Equal(t, "a@x.io", mail.To)
	assert.Equal(t, "You requested a reset password request", mail.Subject)
	assert.Contains(t, mail.Text, ResetLink("https://books.example.com", *stored.ResetToken, u.ID))
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	f := newFixture()

	err := f.reset.RequestReset(context.Background(), "nobody@x.io")

	assert.ErrorIs(t, err, ErrEmailNotFound)
	_, sent := f.sender.last()
	assert.False(t, sent)
}

func TestRequestReset_DeliveryFailureKeepsToken(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	f.sender.err = errSMTPDown

	err := f.reset.RequestReset(context.Background(), "a@x.io")
	assert.ErrorIs(t, err, ErrNotificationDeliveryFailed)

	token := f.storedResetToken(u.ID)
	require.NotEmpty(t, token)
	require.NoError(t, f.reset.CompleteReset(context.Background(), u.ID, token, "newpass"))
}

func TestRequestReset_SupersedesPreviousToken(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")

	require.NoError(t, f.reset.RequestReset(context.Background(), "a@x.io"))
	first := f.storedResetToken(u.ID)
	require.NoError(t, f.reset.RequestReset(context.Background(), "a@x.io"))
	second := f.storedResetToken(u.ID)
	require.NotEqual(t, first, second)

	err := f.reset.CompleteReset(context.Background(), u.ID, first, "newpass")
	assert.ErrorIs(t, err, ErrResetNotFoundOrExpired)
	assert.NoError(t, f.reset.CompleteReset(context.Background(), u.ID, second, "newpass"))
}

func TestCompleteReset_ChangesPasswordOnce(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	ctx := context.Background()

	require.NoError(t, f.reset.RequestReset(ctx, "a@x.io"))
	token := f.storedResetToken(u.ID)

	require.NoError(t, f.reset.CompleteReset(ctx, u.ID, token, "brandnew"))

	_, err := f.auth.Login(ctx, "a@x.io", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "a@x.io", "brandnew")
	assert.NoError(t, err)

	stored, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiration)

	// replay
	err = f.reset.CompleteReset(ctx, u.ID, token, "another")
	assert.ErrorIs(t, err, ErrResetNotFoundOrExpired)
}

func TestCompleteReset_ExpiredWindow(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	ctx := context.Background()

	require.NoError(t, f.reset.RequestReset(ctx, "a@x.io"))
	token := f.storedResetToken(u.ID)

	f.reset.now = func() time.Time { return time.Now().Add(4 * time.Minute) }
	err := f.reset.CompleteReset(ctx, u.ID, token, "brandnew")
	assert.ErrorIs(t, err, ErrResetNotFoundOrExpired)

	_, err = f.auth.Login(ctx, "a@x.io", "secret1")
	assert.NoError(t, err)
}

func TestCompleteReset_Mismatches(t *testing.T) {
	f := newFixture()
	a := f.seed("a@x.io", "secret1")
	b := f.seed("b@x.io", "secret2")
	ctx := context.Background()

	require.NoError(t, f.reset.RequestReset(ctx, "a@x.io"))
	require.NoError(t, f.reset.RequestReset(ctx, "b@x.io"))
	tokenA := f.storedResetToken(a.ID)

	cases := []struct {
		name, id, token string
	}{
		{"other user's id", b.ID, tokenA},
		{"unknown id", "u-missing", tokenA},
		{"garbage token", a.ID, "not-a-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.reset.CompleteReset(ctx, tc.id, tc.token, "brandnew")
			assert.ErrorIs(t, err, ErrResetNotFoundOrExpired)
		})
	}

	// a's pending reset is untouched by the failed attempts
	assert.NoError(t, f.reset.CompleteReset(ctx, a.ID, tokenA, "brandnew"))
}

func TestCompleteReset_RejectsAuthToken(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	ctx := context.Background()

	authToken, err := f.auth.Login(ctx, "a@x.io", "secret1")
	require.NoError(t, err)

	err = f.reset.CompleteReset(ctx, u.ID, authToken, "brandnew")
	assert.ErrorIs(t, err, ErrResetNotFoundOrExpired)
}

func TestRequestReset_DoesNotRevertConcurrentPasswordChange(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	ctx := context.Background()

	require.NoError(t, f.reset.RequestReset(ctx, "a@x.io"))
	first := f.storedResetToken(u.ID)

	hooked := &hookedUsers{UserRepository: f.users}
	f.reset.Users = hooked
	hooked.afterFindByEmail = func() {
		require.NoError(t, f.reset.CompleteReset(ctx, u.ID, first, "brandnew"))
	}

	require.NoError(t, f.reset.RequestReset(ctx, "a@x.io"))

	_, err := f.auth.Login(ctx, "a@x.io", "brandnew")
	assert.NoError(t, err)
	_, err = f.auth.Login(ctx, "a@x.io", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotEmpty(t, f.storedResetToken(u.ID))
}

func TestCompleteReset_ConcurrentCompletionsSucceedOnce(t *testing.T) {
	f := newFixture()
	u := f.seed("a@x.io", "secret1")
	ctx := context.Background()

	require.NoError(t, f.reset.RequestReset(ctx, "a@x.io"))
	token := f.storedResetToken(u.ID)

	hooked := &hookedUsers{UserRepository: f.users}
	f.reset.Users = hooked
	hooked.afterFindByReset = func() {
		require.NoError(t, f.reset.CompleteReset(ctx, u.ID, token, "winner"))
	}

	err := f.reset.CompleteReset(ctx, u.ID, token, "loser")
	assert.ErrorIs(t, err, ErrResetNotFoundOrExpired)

	_, err = f.auth.Login(ctx, "a@x.io", "winner")
	assert.NoError(t, err)
	_, err = f.auth.Login(ctx, "a@x.io", "loser")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
