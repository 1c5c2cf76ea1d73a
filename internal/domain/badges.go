package domain

// BadgeID is the persisted identifier of an achievement.
type BadgeID string

const (
	BadgeConversationStarter BadgeID = "conversation_starter"
	BadgeRespectfulEnder     BadgeID = "respectful_ender"
	BadgeActiveDater         BadgeID = "active_dater"
	BadgeMatchMaker          BadgeID = "match_maker"
)

// Badge describes one achievement and the threshold of its metric.
type Badge struct {
	ID          BadgeID
	Key         string
	Title       string
	Description string
	Icon        string
	Requirement int64
}

// Badges lists every achievement in display order.
var Badges = []Badge{
	{
		ID:          BadgeConversationStarter,
		Key:         "CONVERSATION_STARTER",
		Title:       "Conversation Starter",
		Description: "Started 5 conversations",
		Icon:        "💬",
		Requirement: 5,
	},
	{
		ID:          BadgeRespectfulEnder,
		Key:         "RESPECTFUL_ENDER",
		Title:       "Respectful Ender",
		Description: "Ended 3 conversations respectfully",
		Icon:        "🤝",
		Requirement: 3,
	},
	{
		ID:          BadgeActiveDater,
		Key:         "ACTIVE_DATER",
		Title:       "Active Dater",
		Description: "Used the app for 7 days",
		Icon:        "⭐",
		Requirement: 7,
	},
	{
		ID:          BadgeMatchMaker,
		Key:         "MATCH_MAKER",
		Title:       "Match Maker",
		Description: "Got 5 matches",
		Icon:        "❤️",
		Requirement: 5,
	},
}

// LookupBadge returns the definition for id.
func LookupBadge(id BadgeID) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
