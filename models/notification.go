package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	NotificationFollow  = "follow"
	NotificationComment = "comment"
	NotificationUpvote  = "upvote"
)

type Notification struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID      string             `bson:"recipientId" json:"recipientId"`
	SenderID         string             `bson:"senderId" json:"senderId"`
	SenderUsername   string             `bson:"senderUsername" json:"senderUsername"`
	SenderProfileURL string             `bson:"senderProfileUrl" json:"senderProfileUrl"`
	Type             string             `bson:"type" json:"type"` // follow, comment, upvote
	PostID           string             `bson:"postId,omitempty" json:"postId,omitempty"`
	PostTitle        string             `bson:"postTitle,omitempty" json:"postTitle,omitempty"`
	Read             bool               `bson:"read" json:"read"`
	CreatedAt        int64              `bson:"createdAt" json:"createdAt"`
}
