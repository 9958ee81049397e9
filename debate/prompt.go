package debate

import (
	"fmt"
	"strings"

	"debator/models"
)

// truncateHistory bounds the prompt context: newest max entries survive,
// oldest dropped first.
func truncateHistory(history []models.RoleMsg, max int) []models.RoleMsg {
	if max <= 0 || len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

func historyBlock(history []models.RoleMsg) string {
	lines := make([]string, len(history))
	for i, m := range history {
		lines[i] = m.ToPrompt()
	}
	return strings.Join(lines, "\n")
}

func turnPrompt(utterance string, history []models.RoleMsg, maxSentences int) string {
	var sb strings.Builder
	sb.WriteString("You are a sharp debater in a friendly argument.\n")
	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		sb.WriteString(historyBlock(history))
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Your opponent just said: %q\n\n", utterance)
	sb.WriteString("Reply in Nigerian Pidgin English.\n")
	sb.WriteString("Be sharp, funny, and defend your side.\n")
	fmt.Fprintf(&sb, "Max %d sentences.", maxSentences)
	return sb.String()
}

func openingPrompt(aiSide, userSide string) string {
	return fmt.Sprintf(`You are %s in a debate against %s.
The topic is: Who is better?
Speak in Nigerian Pidgin English.
Be funny, witty, and aggressive but playful.
Keep it short (max 2 sentences).
Start the debate now.`, aiSide, userSide)
}

func sessionPrompt(aiSide, userSide string, lines []string, userText string, maxSentences int) string {
	return fmt.Sprintf(`You are %s debating against %s.
Current conversation history:
%s

User just said: %q

Reply in Nigerian Pidgin English.
Be sharp, funny, and defend your side.
Max %d sentences.`, aiSide, userSide, strings.Join(lines, "\n"), userText, maxSentences)
}

func judgePrompt(char1, char2 string, lines []string) string {
	return fmt.Sprintf(`Judge this debate between %s and %s.
History:
%s

Who won based on intelligence, wit, and points?
Reply with just the winner's name.`, char1, char2, strings.Join(lines, "\n"))
}

func portraitPrompt(characterName string) string {
	return fmt.Sprintf("Create a professional portrait photo of %s, photorealistic, high quality, studio lighting, neutral background, facing camera, serious expression, head and shoulders shot", characterName)
}
