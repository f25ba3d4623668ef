package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyDeterministic(t *testing.T) {
	chat := NewChatService()

	first := chat.Reply("Tell me about the restaurant menu", "friendly_teacher")
	second := chat.Reply("Tell me about the restaurant menu", "friendly_teacher")
	assert.Equal(t, first, second)
}

func TestReplyTopicalResponse(t *testing.T) {
	chat := NewChatService()

	got := chat.Reply("I went to a restaurant yesterday", "friendly_teacher")
	matched := false
	for _, r := range topicalResponses["restaurant"] {
		if strings.Contains(got.Response, r) {
			matched = true
		}
	}
	assert.True(t, matched, "expected a restaurant response, got %q", got.Response)
}

func TestReplyUnknownPersonalityFallsBack(t *testing.T) {
	chat := NewChatService()

	got := chat.Reply("hello", "drill_sergeant")
	assert.Equal(t, "friendly_teacher", got.Personality)
}

func TestReplyFallbackWhenNoTopicMatches(t *testing.T) {
	chat := NewChatService()

	got := chat.Reply("xyzzy plugh", "grammar_expert")
	matched := false
	for _, f := range personalities["grammar_expert"].fallbacks {
		if strings.Contains(got.Response, f) {
			matched = true
		}
	}
	assert.True(t, matched)
}

func TestReplyPrefixMatchesPersonality(t *testing.T) {
	chat := NewChatService()

	got := chat.Reply("how is the weather", "conversation_partner")
	matched := false
	for _, p := range personalities["conversation_partner"].prefixes {
		if strings.HasPrefix(got.Response, p) {
			matched = true
		}
	}
	assert.True(t, matched)
}

func TestDetectCorrections(t *testing.T) {
	got := detectCorrections("I is happy and he have a dog")
	assert.Len(t, got, 2)
	assert.Contains(t, got, "Use 'I am' instead of 'I is'")
	assert.Contains(t, got, "Use 'he has' instead of 'he have'")

	assert.Empty(t, detectCorrections("I am happy and he has a dog"))
}

func TestReplyAlwaysSuggestsSomething(t *testing.T) {
	chat := NewChatService()

	got := chat.Reply("anything at all", "friendly_teacher")
	assert.Len(t, got.Suggestions, 1)
	assert.Contains(t, suggestionPool, got.Suggestions[0])
}
