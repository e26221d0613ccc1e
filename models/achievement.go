package models

// Achievement is a fixed catalog entry. The catalog is code-defined and never
// changes at runtime; users only ever store achievement ids.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var Achievements = []Achievement{
	{
		ID:          "first_post",
		Title:       "First Post",
		Description: "You shared your first story or problem.",
		Icon:        "feather",
	},
	{
		ID:          "first_comment",
		Title:       "Joined the Conversation",
		Description: "You posted your first comment.",
		Icon:        "message-square",
	},
	{
		ID:          "first_upvote",
		Title:       "Appreciated",
		Description: "Your post received its first upvote.",
		Icon:        "award",
	},
	{
		ID:          "power_user",
		Title:       "Power User",
		Description: "You have posted more than 10 stories.",
		Icon:        "coffee",
	},
	// enthusiast and helpful_hand have no automatic unlock path; mods grant
	// them directly on the user document.
	{
		ID:          "enthusiast",
		Title:       "Enthusiast",
		Description: "You have commented on 25 different posts.",
		Icon:        "users",
	},
	{
		ID:          "helpful_hand",
		Title:       "Helpful Hand",
		Description: "Your comment was marked as helpful.",
		Icon:        "heart-handshake",
	},
	{
		ID:          "popular_post",
		Title:       "Popular Post",
		Description: "One of your posts has over 25 upvotes.",
		Icon:        "star",
	},
	{
		ID:          "story_teller",
		Title:       "Story Teller",
		Description: "One of your posts has over 100 upvotes.",
		Icon:        "book-open",
	},
	{
		ID:          "verified",
		Title:       "Verified",
		Description: "Your account has been verified by the mods.",
		Icon:        "shield-check",
	},
}

func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
