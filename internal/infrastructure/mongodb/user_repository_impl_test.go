package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestResetFilter(t *testing.T) {
	now := time.Now()
	oid := bson.NewObjectID()

	filter, ok := resetFilter(oid.Hex(), "tok", now)
	require.True(t, ok)
	assert.Equal(t, oid, filter["_id"])
	assert.Equal(t, "tok", filter["resetToken"])
	assert.Equal(t, bson.M{"$gt": now}, filter["resetTokenExpiration"])

	_, ok = resetFilter("not-an-object-id", "tok", now)
	assert.False(t, ok)
}

func TestConsumeUpdate(t *testing.T) {
	update := consumeUpdate("new-hash")

	assert.Equal(t, bson.M{"password": "new-hash"}, update["$set"])
	assert.Equal(t, bson.M{"resetToken": "", "resetTokenExpiration": ""}, update["$unset"])
}

func TestResetTokenUpdate_LeavesPassword(t *testing.T) {
	exp := time.Now().Add(3 * time.Minute)

	update := resetTokenUpdate("tok", exp)

	assert.Equal(t, bson.M{"resetToken": "tok", "resetTokenExpiration": exp}, update["$set"])
	_, hasUnset := update["$unset"]
	assert.False(t, hasUnset)
}

func TestUserDocument_ToEntity(t *testing.T) {
	oid := bson.NewObjectID()
	tok := "tok"
	doc := userDocument{ID: oid, Email: "a@x.com", Password: "hash", IsAdmin: true, ResetToken: &tok}

	u := doc.toEntity()

	assert.Equal(t, oid.Hex(), u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, &tok, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiration)
}
