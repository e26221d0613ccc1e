package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Video struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	Username       string             `bson:"username" json:"username"`
	UserProfileURL string             `bson:"userProfileUrl" json:"userProfileUrl"`
	VideoURL       string             `bson:"videoUrl" json:"videoUrl"`
	Caption        string             `bson:"caption" json:"caption"`
	Song           string             `bson:"song" json:"song"`

	Likes    []string  `bson:"likes" json:"likes"`
	Comments []Comment `bson:"comments" json:"comments"`

	// Best-effort counter bumped with $inc. Unlike likes there is no dedup
	// key, so repeated shares by the same user all count.
	Shares int64 `bson:"shares" json:"shares"`

	IsVerified bool  `bson:"isVerified,omitempty" json:"isVerified,omitempty"`
	CreatedAt  int64 `bson:"createdAt" json:"createdAt"`
}
