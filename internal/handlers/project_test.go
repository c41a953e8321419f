package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectEnrollsAuthor(t *testing.T) {
	r := setupRouter(t)
	aliceID := registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"title":       "SoftDesk",
		"description": "issue tracking",
		"type":        "back-end",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := parseJSON(t, w)
	assert.Equal(t, "SoftDesk", body["title"])
	assert.Equal(t, "back-end", body["type"])
	assert.Equal(t, float64(1), body["contributors_count"])
	assert.Equal(t, "alice", body["author"].(map[string]any)["username"])

	projectID := uint(body["id"].(float64))

	contributors := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/contributors", projectID), token, nil)
	require.Equal(t, http.StatusOK, contributors.Code)

	list := parseJSONList(t, contributors)
	require.Len(t, list, 1)
	assert.Equal(t, float64(aliceID), list[0]["user"].(map[string]any)["id"])
}

func TestCreateProjectInvalidType(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"title":       "Nope",
		"description": "bad type",
		"type":        "mainframe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid project type", parseJSON(t, w)["error"])
}

func TestProjectListIsScoped(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	createProject(t, r, aliceToken, "Alice's")
	createProject(t, r, bobToken, "Bob's")

	w := doJSON(t, r, http.MethodGet, "/api/projects", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := parseJSONList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice's", list[0]["title"])
}

func TestProjectAuthorOnlyWrites(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	bobID := registerUser(t, r, "bob")
	registerUser(t, r, "carol")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")
	carolToken := loginUser(t, r, "carol")

	projectID := createProject(t, r, aliceToken, "Shared")
	path := fmt.Sprintf("/api/projects/%d", projectID)

	added := doJSON(t, r, http.MethodPost, path+"/add_contributor", aliceToken, gin.H{"user_id": bobID})
	require.Equal(t, http.StatusCreated, added.Code)

	update := gin.H{"title": "Renamed", "description": "d", "type": "iOS"}

	// A contributor can read but not write.
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodPut, path, bobToken, update).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodDelete, path, bobToken, nil).Code)

	// An outsider sees nothing at all.
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, path, carolToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPut, path, carolToken, update).Code)

	// The author succeeds.
	updated := doJSON(t, r, http.MethodPut, path, aliceToken, update)
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Equal(t, "Renamed", parseJSON(t, updated)["title"])

	patched := doJSON(t, r, http.MethodPatch, path, aliceToken, gin.H{"description": "patched"})
	require.Equal(t, http.StatusOK, patched.Code)
	assert.Equal(t, "patched", parseJSON(t, patched)["description"])

	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, path, aliceToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, path, aliceToken, nil).Code)
}

func TestAddContributorErrors(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	bobID := registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	projectID := createProject(t, r, aliceToken, "Shared")
	path := fmt.Sprintf("/api/projects/%d/add_contributor", projectID)

	// Unknown target user is a validation failure.
	w := doJSON(t, r, http.MethodPost, path, aliceToken, gin.H{"user_id": 9999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User not found", parseJSON(t, w)["error"])

	// First add succeeds, second is a conflict.
	w = doJSON(t, r, http.MethodPost, path, aliceToken, gin.H{"user_id": bobID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, path, aliceToken, gin.H{"user_id": bobID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// A contributor who is not the author may not add others.
	registerUser(t, r, "carol")
	w = doJSON(t, r, http.MethodPost, path, bobToken, gin.H{"user_id": 3})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
