package bot

import (
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// SnipedMessage is the last deleted message seen in a channel.
type SnipedMessage struct {
	AuthorID   string
	AuthorName string
	Content    string
	DeletedAt  time.Time
}

var (
	snipeMu    sync.RWMutex
	snipeStore = make(map[string]SnipedMessage)
)

// StoreSnipe records the most recent deleted message for a channel.
func StoreSnipe(channelID, authorID, authorName, content string) {
	if content == "" {
		return
	}
	snipeMu.Lock()
	snipeStore[channelID] = SnipedMessage{
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		DeletedAt:  time.Now(),
	}
	snipeMu.Unlock()
}

// LastDeleted returns the last deleted message in a channel, if any.
func LastDeleted(channelID string) (SnipedMessage, bool) {
	snipeMu.RLock()
	defer snipeMu.RUnlock()
	msg, ok := snipeStore[channelID]
	return msg, ok
}

// expandMemberTemplate substitutes the placeholders supported in welcome and
// leave messages.
func expandMemberTemplate(template string, user *discordgo.User, guildID string) string {
	msg := strings.ReplaceAll(template, "{user}", user.Mention())
	msg = strings.ReplaceAll(msg, "{username}", user.Username)
	msg = strings.ReplaceAll(msg, "{guild}", guildID)
	return msg
}
