package services

import (
	"hash/fnv"
	"math/rand"
	"strings"
)

// ChatService produces canned conversational replies. Responses are picked
// deterministically from the message text so the same input always gets the
// same answer.
type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

// ChatReply is the simulated tutor answer for one user message.
type ChatReply struct {
	Response    string   `json:"response"`
	Personality string   `json:"personality"`
	Corrections []string `json:"corrections"`
	Suggestions []string `json:"suggestions"`
}

type personality struct {
	prefixes  []string
	fallbacks []string
}

var personalities = map[string]personality{
	"friendly_teacher": {
		prefixes: []string{
			"Great question! ",
			"I love your curiosity! ",
			"That's a wonderful thing to practice. ",
		},
		fallbacks: []string{
			"Let's try saying that a different way. Can you rephrase it?",
			"Good effort! Tell me more about what you want to express.",
			"That's interesting! Can you give me an example sentence?",
		},
	},
	"conversation_partner": {
		prefixes: []string{
			"Oh nice! ",
			"Haha, totally. ",
			"Yeah, I get that. ",
		},
		fallbacks: []string{
			"Cool! What else happened?",
			"Really? Tell me more!",
			"That sounds fun. What do you usually do on weekends?",
		},
	},
	"grammar_expert": {
		prefixes: []string{
			"Let's look at the structure here. ",
			"From a grammar standpoint, ",
			"Precision matters, so note this: ",
		},
		fallbacks: []string{
			"Remember that word order changes the emphasis of a sentence.",
			"Watch your verb tense agreement in longer sentences.",
			"Try building that sentence with a subordinate clause.",
		},
	},
}

// topicalResponses keys on keywords found in the user's message.
var topicalResponses = map[string][]string{
	"restaurant": {
		"When ordering food, you can say 'I would like...' or 'Could I have...'. Which dish do you want to order?",
		"Useful restaurant phrases: 'a table for two, please' and 'the check, please'. Try using one!",
	},
	"travel": {
		"For travel, practice asking for directions: 'How do I get to the station?' Where are you planning to go?",
		"At the airport you might hear 'boarding pass' and 'gate'. Do you know what they mean?",
	},
	"business": {
		"In business settings, 'I'd like to schedule a meeting' sounds more professional than 'let's meet'. Try it!",
		"Formal emails often open with 'I hope this message finds you well'. When would you use that?",
	},
	"weather": {
		"Talking about weather is a classic icebreaker! 'It looks like rain' or 'What a lovely day'. How's the weather where you are?",
	},
	"family": {
		"Family vocabulary: 'sibling' covers both brothers and sisters. How many siblings do you have?",
	},
	"food": {
		"Food is a great topic! Describe your favorite dish using three adjectives.",
	},
	"work": {
		"When describing your job, use the present simple: 'I work as a...'. What do you do?",
	},
	"hello": {
		"Hello! Great to see you practicing. What would you like to talk about today?",
		"Hi there! Ready for some conversation practice?",
	},
}

// topicKeywords fixes the match order so a message mentioning two topics
// always resolves the same way.
var topicKeywords = []string{
	"restaurant", "travel", "business", "weather",
	"family", "food", "work", "hello",
}

// Reply builds a response for the message under the given personality.
// Unknown personalities fall back to friendly_teacher.
func (s *ChatService) Reply(message, personalityName string) ChatReply {
	p, ok := personalities[personalityName]
	if !ok {
		personalityName = "friendly_teacher"
		p = personalities[personalityName]
	}

	rng := rand.New(rand.NewSource(int64(textSeed(message + personalityName))))

	body := ""
	lower := strings.ToLower(message)
	for _, keyword := range topicKeywords {
		if strings.Contains(lower, keyword) {
			responses := topicalResponses[keyword]
			body = responses[rng.Intn(len(responses))]
			break
		}
	}
	if body == "" {
		body = p.fallbacks[rng.Intn(len(p.fallbacks))]
	}

	return ChatReply{
		Response:    p.prefixes[rng.Intn(len(p.prefixes))] + body,
		Personality: personalityName,
		Corrections: detectCorrections(message),
		Suggestions: conversationSuggestions(rng),
	}
}

// detectCorrections flags a handful of common learner mistakes.
func detectCorrections(message string) []string {
	var corrections []string
	lower := " " + strings.ToLower(message) + " "

	commonMistakes := []struct{ wrong, right string }{
		{" i is ", "Use 'I am' instead of 'I is'"},
		{" he have ", "Use 'he has' instead of 'he have'"},
		{" she have ", "Use 'she has' instead of 'she have'"},
		{" more better ", "Use 'better' instead of 'more better'"},
		{" peoples ", "'People' is already plural"},
	}
	for _, m := range commonMistakes {
		if strings.Contains(lower, m.wrong) {
			corrections = append(corrections, m.right)
		}
	}
	return corrections
}

var suggestionPool = []string{
	"Try answering with a full sentence instead of one word.",
	"Ask me a question back to keep the conversation going.",
	"Use a new word you learned this week in your next message.",
	"Describe how you feel about the topic in more detail.",
}

func conversationSuggestions(rng *rand.Rand) []string {
	first := rng.Intn(len(suggestionPool))
	return []string{suggestionPool[first]}
}

func textSeed(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}
