package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionSafe(t *testing.T) {
	assert.True(t, ActionList.Safe())
	assert.True(t, ActionRetrieve.Safe())
	assert.False(t, ActionCreate.Safe())
	assert.False(t, ActionUpdate.Safe())
	assert.False(t, ActionDelete.Safe())
}

func TestForProject(t *testing.T) {
	tests := []struct {
		name       string
		membership Membership
		action     Action
		want       Decision
	}{
		{"contributor reads", Membership{IsContributor: true}, ActionRetrieve, Allow},
		{"outsider read is hidden", Membership{}, ActionRetrieve, Hide},
		{"author updates", Membership{IsAuthor: true, IsContributor: true}, ActionUpdate, Allow},
		{"author deletes", Membership{IsAuthor: true, IsContributor: true}, ActionDelete, Allow},
		{"contributor update forbidden", Membership{IsContributor: true}, ActionUpdate, Deny},
		{"contributor delete forbidden", Membership{IsContributor: true}, ActionDelete, Deny},
		{"outsider update is hidden", Membership{}, ActionUpdate, Hide},
		// Authorship alone suffices for writes, membership is not re-checked.
		{"author without membership row still writes", Membership{IsAuthor: true}, ActionUpdate, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForProject(tt.membership, tt.action))
		})
	}
}

func TestForIssueAndComment(t *testing.T) {
	contributor := Membership{IsContributor: true}
	author := Membership{IsAuthor: true, IsContributor: true}

	assert.Equal(t, Allow, ForIssue(contributor, ActionRetrieve))
	assert.Equal(t, Deny, ForIssue(contributor, ActionDelete))
	assert.Equal(t, Allow, ForIssue(author, ActionDelete))
	assert.Equal(t, Hide, ForIssue(Membership{}, ActionRetrieve))

	assert.Equal(t, Allow, ForComment(contributor, ActionList))
	assert.Equal(t, Deny, ForComment(contributor, ActionUpdate))
	assert.Equal(t, Allow, ForComment(author, ActionUpdate))
	assert.Equal(t, Hide, ForComment(Membership{}, ActionDelete))
}

func TestForUser(t *testing.T) {
	assert.Equal(t, Allow, ForUser(false, ActionRetrieve))
	assert.Equal(t, Allow, ForUser(false, ActionList))
	assert.Equal(t, Allow, ForUser(true, ActionUpdate))
	assert.Equal(t, Allow, ForUser(true, ActionDelete))
	assert.Equal(t, Deny, ForUser(false, ActionUpdate))
	assert.Equal(t, Deny, ForUser(false, ActionDelete))
}
