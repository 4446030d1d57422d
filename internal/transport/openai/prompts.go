package openai

import (
	"strings"

	"github.com/tamarack-health/matchd/internal/domain"
)

const classifierBasePrompt = `You are analyzing user messages in a therapy matching platform. Your goal is to identify when users are expressing preferences for therapists.

Consider a message as a therapist request if it mentions any subtle hints about the following:
- demographic preferences (gender, ethnicity, age, etc.)
- therapy style or approach preferences
- availability or location preferences
- price/cost preferences
- session format preferences (individual, couples, family)
- questions about specific types of therapists
- any indication they're looking for or want to find a therapist
- specific issues they want help with

Example therapist requests:
- "prefer pacific islanders"
- "looking for someone under $150"
- "need help with anxiety"
- "are there any female therapists?"
- "someone who does CBT"
- "available on weekends"

Only classify as NOT a therapist request if the message is:
- A general question about therapy concepts (e.g. "What is CBT?")
- Small talk or greetings
- Direct questions about the platform/service`

const classifierFirstMessageHint = `

This is the user's first message. Be more likely to interpret it as a therapist request if it mentions:
- any preferences or needs
- seeking help or therapy
- personal situations`

const classifierViewingHeader = `

The user is currently viewing these therapists:`

func classifierSystemPrompt(firstMessage bool, displayed []domain.DisplayedCandidate) string {
	var b strings.Builder
	b.WriteString(classifierBasePrompt)
	if len(displayed) > 0 {
		b.WriteString(classifierViewingHeader)
		for _, d := range displayed {
			b.WriteString("\n- ")
			b.WriteString(d.Name)
		}
		b.WriteString("\nQuestions about these therapists or their attributes are therapist requests.")
	}
	if firstMessage {
		b.WriteString(classifierFirstMessageHint)
	}
	return b.String()
}

const extractorBasePrompt = `You are an expert at extracting therapist preferences from user messages.
Your task is to carefully analyze the message and identify ANY mentions of therapist preferences.

Please extract the following if mentioned:
- gender (female, male, non_binary)
- sexuality (straight, gay, lesbian, bisexual, queer, pansexual, asexual, questioning, prefer_not_to_say)
- ethnicity (asian, black, hispanic, indigenous, middle_eastern, pacific_islander, white, multiracial, prefer_not_to_say)
- faith (christian, jewish, muslim, hindu, buddhist, sikh, atheist, agnostic, spiritual, other, prefer_not_to_say)
- session format (individual, couples, family)
- price limit as a maximum hourly rate number (initial and subsequent sessions)
- availability (online, in_person, both)

IMPORTANT: Omit every field the message does not mention. For price limits,
omit max_price_initial and max_price_subsequent when no price preference is
mentioned. DO NOT set a price to 0 as this would exclude all therapists. Only
set a numeric price when the user specifically mentions a price limit.

Be attentive to both explicit and implicit preferences. For example:
- "looking for a female therapist" -> gender: "female"
- "I'd prefer someone who is LGBT friendly" -> consider sexuality values
- "Need someone who understands Asian culture" -> ethnicity: ["asian"]
- "I can only afford $100 per hour" -> max_price_initial: 100
- "we want to work on our marriage" -> format: ["couples"]

Include reasoning for the extracted preferences and explain any ambiguity in the message.`

func extractorSystemPrompt(current domain.FilterState, fromForm bool) string {
	if current.IsZero() {
		return extractorBasePrompt
	}

	var b strings.Builder
	b.WriteString(extractorBasePrompt)
	if fromForm {
		b.WriteString("\n\nCurrent active filters (HIGH PRIORITY - keep these unless explicitly changed):\n")
	} else {
		b.WriteString("\n\nCurrent form filters (LOW PRIORITY - only use if chat doesn't specify preferences):\n")
	}
	b.WriteString(filterLines(current))
	if !fromForm {
		b.WriteString("\nPrioritize any preferences mentioned in the chat over these form filters.")
	}
	return b.String()
}

func filterLines(f domain.FilterState) string {
	var b strings.Builder
	for _, part := range strings.Fields(f.Summary()) {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		b.WriteString("- ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(value, ",", ", "))
		b.WriteString("\n")
	}
	return b.String()
}
