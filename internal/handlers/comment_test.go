package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createIssue(t *testing.T, r *gin.Engine, token string, projectID uint) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/issues", token, gin.H{
		"title":       "issue",
		"description": "d",
		"tag":         "BUG",
		"project":     projectID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return uint(parseJSON(t, w)["id"].(float64))
}

func createComment(t *testing.T, r *gin.Engine, token string, issueID uint, text string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/comments", token, gin.H{
		"description": text,
		"issue":       issueID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return parseJSON(t, w)["uuid"].(string)
}

func TestCommentLookupByUUID(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")
	projectID := createProject(t, r, token, "Tracker")
	issueID := createIssue(t, r, token, projectID)

	id := createComment(t, r, token, issueID, "first!")

	w := doJSON(t, r, http.MethodGet, "/api/comments/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseJSON(t, w)
	assert.Equal(t, "first!", body["description"])
	assert.Equal(t, id, body["uuid"])
	assert.Equal(t, float64(issueID), body["issue"])
}

func TestCommentMalformedUUID(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")

	// Malformed identifiers are a client error, not a missing resource.
	w := doJSON(t, r, http.MethodGet, "/api/comments/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A well-formed but unknown identifier is a missing resource.
	w = doJSON(t, r, http.MethodGet, "/api/comments/11111111-2222-3333-4444-555555555555", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentCreateRequiresMembership(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	registerUser(t, r, "mallory")
	aliceToken := loginUser(t, r, "alice")
	malloryToken := loginUser(t, r, "mallory")

	projectID := createProject(t, r, aliceToken, "Tracker")
	issueID := createIssue(t, r, aliceToken, projectID)

	w := doJSON(t, r, http.MethodPost, "/api/comments", malloryToken, gin.H{
		"description": "sneaky",
		"issue":       issueID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/comments", malloryToken, gin.H{
		"description": "nowhere",
		"issue":       9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentAuthorOnlyWrites(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "alice")
	bobID := registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	projectID := createProject(t, r, aliceToken, "Tracker")
	added := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/add_contributor", projectID), aliceToken, gin.H{"user_id": bobID})
	require.Equal(t, http.StatusCreated, added.Code)

	issueID := createIssue(t, r, aliceToken, projectID)
	id := createComment(t, r, aliceToken, issueID, "alice's comment")

	// Bob reads but cannot edit or delete Alice's comment.
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/comments/"+id, bobToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodPut, "/api/comments/"+id, bobToken, gin.H{"description": "hijacked"}).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodDelete, "/api/comments/"+id, bobToken, nil).Code)

	// Alice edits and deletes her own.
	edited := doJSON(t, r, http.MethodPut, "/api/comments/"+id, aliceToken, gin.H{"description": "edited"})
	require.Equal(t, http.StatusOK, edited.Code)
	assert.Equal(t, "edited", parseJSON(t, edited)["description"])

	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, "/api/comments/"+id, aliceToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/comments/"+id, aliceToken, nil).Code)
}

// TestTrackerScenario walks the end-to-end flow: project creation with
// auto-enrollment, contributor invitation, issue defaults, comment
// authorship rules and project deletion cascade.
func TestTrackerScenario(t *testing.T) {
	r := setupRouter(t)
	registerUser(t, r, "usera")
	userBID := registerUser(t, r, "userb")
	tokenA := loginUser(t, r, "usera")
	tokenB := loginUser(t, r, "userb")

	// A creates project P; A is a contributor of P.
	projectID := createProject(t, r, tokenA, "P")

	projects := doJSON(t, r, http.MethodGet, "/api/projects", tokenA, nil)
	require.Len(t, parseJSONList(t, projects), 1)

	// A adds B as contributor.
	added := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/add_contributor", projectID), tokenA, gin.H{"user_id": userBID})
	require.Equal(t, http.StatusCreated, added.Code)

	// B creates issue I with tag BUG and default status/priority.
	created := doJSON(t, r, http.MethodPost, "/api/issues", tokenB, gin.H{
		"title":       "I",
		"description": "d",
		"tag":         "BUG",
		"project":     projectID,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	issue := parseJSON(t, created)
	assert.Equal(t, "To Do", issue["status"])
	assert.Equal(t, "MEDIUM", issue["priority"])
	issueID := uint(issue["id"].(float64))

	// A comments on I.
	commentID := createComment(t, r, tokenA, issueID, "A's comment")

	sub := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/issues/%d/comments", issueID), tokenB, nil)
	require.Equal(t, http.StatusOK, sub.Code)
	require.Len(t, parseJSONList(t, sub), 1)

	// B cannot edit A's comment, A can.
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodPut, "/api/comments/"+commentID, tokenB, gin.H{"description": "not yours"}).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPut, "/api/comments/"+commentID, tokenA, gin.H{"description": "still A's"}).Code)

	// A deletes P: the issue, the comment and B's contributor row go away.
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), tokenA, nil).Code)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/issues/%d", issueID), tokenB, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/comments/"+commentID, tokenB, nil).Code)

	remaining := doJSON(t, r, http.MethodGet, "/api/projects", tokenB, nil)
	require.Equal(t, http.StatusOK, remaining.Code)
	assert.Empty(t, parseJSONList(t, remaining))
}
