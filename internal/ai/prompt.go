package ai

import (
	"strings"
)

// systemPrompt scopes the assistant to Indian traffic-law topics.
const systemPrompt = `You are an expert AI assistant specializing in Indian traffic laws and regulations.

Your primary focus areas include:
- Motor Vehicle Act, 1988 and its amendments
- Traffic rules and regulations in India
- Traffic fines and penalties
- Driving license procedures and requirements
- Vehicle registration processes
- Road safety guidelines
- State-specific traffic regulations

Guidelines for responses:
1. Provide accurate information based on official Indian traffic laws
2. If you're unsure about specific state variations, mention that traffic rules can vary by state
3. Always prioritize safety and legal compliance
4. Use simple, clear language that's easy to understand
5. If asked about non-traffic related topics, politely redirect to traffic law questions

Be helpful, accurate, and focused on Indian traffic law context.`

// BuildPrompt assembles the full prompt for a completion call: the fixed
// system instruction, the bounded conversation history, and the current
// question. History is truncated to the last maxHistory messages to bound
// prompt size and latency.
func BuildPrompt(question string, history []Message, maxHistory int) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if len(history) > 0 {
		b.WriteString("\n\nPrevious conversation context:\n")
		for _, msg := range history {
			role := "User"
			if msg.Role == "assistant" {
				role = "Assistant"
			}
			b.WriteString(role)
			b.WriteString(": ")
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\nUser Question: ")
	b.WriteString(question)
	b.WriteString("\n\nAssistant:")

	return b.String()
}
