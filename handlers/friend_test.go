package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ybchat/models"
)

func decodeLists(t *testing.T, body []byte) models.FriendLists {
	t.Helper()
	var lists models.FriendLists
	require.NoError(t, json.Unmarshal(body, &lists))
	return lists
}

// TestFriendFlow walks a full request/accept cycle over HTTP.
func TestFriendFlow(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "Alice", "alice@example.com")
	env.addUser(t, "bob", "Bob", "bob@example.com")

	w := env.do(t, "POST", "/api/friends/add/bob", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// alice sees bob as pending, bob sees alice as received
	w = env.do(t, "GET", "/api/friends/list", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lists := decodeLists(t, w.Body.Bytes())
	require.Len(t, lists.Pending, 1)
	assert.Equal(t, "bob", lists.Pending[0].Friend.ID)
	assert.Empty(t, lists.Accepted)
	assert.Empty(t, lists.Received)

	w = env.do(t, "GET", "/api/friends/list", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lists = decodeLists(t, w.Body.Bytes())
	require.Len(t, lists.Received, 1)
	assert.Equal(t, "alice", lists.Received[0].Friend.ID)

	w = env.do(t, "POST", "/api/friends/accept/alice", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		w = env.do(t, "GET", "/api/friends/list", pair[0], nil)
		require.Equal(t, http.StatusOK, w.Code)
		lists = decodeLists(t, w.Body.Bytes())
		require.Len(t, lists.Accepted, 1)
		assert.Equal(t, pair[1], lists.Accepted[0].Friend.ID)
		assert.Empty(t, lists.Pending)
		assert.Empty(t, lists.Received)
	}
}

func TestAddFriendErrors(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "Alice", "alice@example.com")
	env.addUser(t, "bob", "Bob", "bob@example.com")

	w := env.do(t, "POST", "/api/friends/add/alice", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "self request")

	w = env.do(t, "POST", "/api/friends/add/nobody", "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown target")

	w = env.do(t, "POST", "/api/friends/add/bob", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, "POST", "/api/friends/add/bob", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "duplicate request")
	w = env.do(t, "POST", "/api/friends/add/alice", "bob", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "reverse duplicate")
}

func TestAcceptWithoutRequestIsSurfaced(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "Alice", "alice@example.com")
	env.addUser(t, "bob", "Bob", "bob@example.com")

	w := env.do(t, "POST", "/api/friends/accept/alice", "bob", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "POST", "/api/friends/reject/alice", "bob", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRejectedPairStaysHiddenAndBlocking(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "Alice", "alice@example.com")
	env.addUser(t, "bob", "Bob", "bob@example.com")

	w := env.do(t, "POST", "/api/friends/add/bob", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, "POST", "/api/friends/reject/alice", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, user := range []string{"alice", "bob"} {
		w = env.do(t, "GET", "/api/friends/list", user, nil)
		require.Equal(t, http.StatusOK, w.Code)
		lists := decodeLists(t, w.Body.Bytes())
		assert.Empty(t, lists.Accepted)
		assert.Empty(t, lists.Pending)
		assert.Empty(t, lists.Received)
	}

	w = env.do(t, "POST", "/api/friends/add/bob", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/friends/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "POST", "/api/friends/add/bob", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
