package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider string             `bson:"authProvider" json:"-"` // email, google
	Username     string             `bson:"username" json:"username"`
	Bio          string             `bson:"bio" json:"bio"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`

	// Achievement ids; displayedBadges is the profile-visible subset (max 5),
	// always contained in unlockedAchievements.
	UnlockedAchievements []string `bson:"unlockedAchievements" json:"unlockedAchievements"`
	DisplayedBadges      []string `bson:"displayedBadges" json:"displayedBadges"`

	// Symmetric relationship sets of user id hex strings. The pair is kept in
	// sync by two independent atomic writes (see handlers).
	Following []string `bson:"following" json:"following"`
	Followers []string `bson:"followers" json:"followers"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	LastSeen  int64 `bson:"lastSeen" json:"lastSeen"`
}
