package consultant

import (
	"encoding/json"
	"strings"

	"github.com/bigkaa/colorsense/internal/domain/model"
)

const systemPrompt = `You are ColorSense's virtual color consultant. You help users choose paint colors based on room type, lighting, furniture and mood.

Recommend 2-4 colors for a single room, 3-5 for a style request, 4-6 for a color scheme, 1-2 for an accent wall and 5-8 for a whole house.

Format every recommendation exactly like this:
🎨 [Color Name] ([Color Code])
• Hex: [Hex Code]
• Description: [Description]
• Perfect for: [Suggested rooms, comma separated]
• Style Tips: [Style advice]
• Lighting Tips: [Lighting considerations]
• Mood: [Emotional impact]
• Pairing Suggestions: [Complementary colors]

After the recommendations add a line "Suggestions:" followed by 3-5 practical tips, one per line, each starting with "• ".

Keep answers focused and specific. No promotional content unless asked.
When asked for more colors, recommend new colors not given before.
Always select colors only from the provided dataset.`

const (
	moreColorsPrompt = "Please suggest additional colors that would work well with the previous recommendations. Make sure to include both colors and suggestions."
	viewColorsPrompt = "Please provide the color codes and explain how to view these colors on Benjamin Moore's website."
)

var (
	moreKeywords = []string{"more", "another", "suggest", "why", "again"}
	viewKeywords = []string{"show", "see", "view", "look"}
)

// Turn — реплика из истории диалога.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// catalogEntry — цвет в контексте промпта.
type catalogEntry struct {
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	Family         string   `json:"family"`
	Collection     string   `json:"collection"`
	Undertone      string   `json:"undertone"`
	LRV            float64  `json:"lrv"`
	Description    string   `json:"description"`
	SuggestedRooms []string `json:"suggestedRooms"`
	Style          string   `json:"style"`
}

// rewriteMessage заменяет короткие служебные просьбы развёрнутой инструкцией.
// Просьба «ещё» учитывается только при непустой истории.
func rewriteMessage(message string, history []Turn) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, moreKeywords) && len(history) > 0:
		return moreColorsPrompt
	case containsAny(lower, viewKeywords):
		return viewColorsPrompt
	default:
		return message
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// buildMessages собирает промпт: системная инструкция с каталогом,
// история диалога и текущее сообщение пользователя.
func buildMessages(message string, history []Turn, colors []*model.Color) ([]Message, error) {
	entries := make([]catalogEntry, len(colors))
	for i, c := range colors {
		entries[i] = catalogEntry{
			Name:           c.Name,
			Code:           c.Code,
			Family:         c.Family,
			Collection:     c.Collection,
			Undertone:      c.Undertone,
			LRV:            c.LRV,
			Description:    c.Description,
			SuggestedRooms: c.SuggestedRooms,
			Style:          c.Style,
		}
	}
	catalog, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{
		Role:    RoleSystem,
		Content: systemPrompt + "\n\nAvailable Benjamin Moore colors:\n" + string(catalog),
	})
	for _, t := range history {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		role := RoleUser
		if strings.EqualFold(t.Role, RoleAssistant) {
			role = RoleAssistant
		}
		messages = append(messages, Message{Role: role, Content: content})
	}
	messages = append(messages, Message{Role: RoleUser, Content: rewriteMessage(message, history)})

	return messages, nil
}
