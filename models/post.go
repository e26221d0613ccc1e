package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment lives embedded inside its parent Post or Video document, appended
// with $push so insertion order is the document order.
type Comment struct {
	ID             string `bson:"id" json:"id"`
	UserID         string `bson:"userId" json:"userId"`
	Username       string `bson:"username" json:"username"`
	UserProfileURL string `bson:"userProfileUrl" json:"userProfileUrl"`
	Text           string `bson:"text" json:"text"`
	CreatedAt      int64  `bson:"createdAt" json:"createdAt"`
}

type PostDonations struct {
	CashAppName string `bson:"cashAppName,omitempty" json:"cashAppName,omitempty"`
	PhoneNumber string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
}

type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	Username       string             `bson:"username" json:"username"`
	UserProfileURL string             `bson:"userProfileUrl" json:"userProfileUrl"`
	Title          string             `bson:"title" json:"title"`
	Content        string             `bson:"content" json:"content"`
	ImageURL       string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Tags           []string           `bson:"tags" json:"tags"`

	// Vote sets of user id hex strings. A user id appears in at most one of
	// the two at any time; handlers mutate them with $addToSet/$pull only.
	Upvotes   []string `bson:"upvotes" json:"upvotes"`
	Downvotes []string `bson:"downvotes" json:"downvotes"`

	Comments   []Comment      `bson:"comments" json:"comments"`
	IsVerified bool           `bson:"isVerified,omitempty" json:"isVerified,omitempty"`
	Donations  *PostDonations `bson:"donations,omitempty" json:"donations,omitempty"`
	CreatedAt  int64          `bson:"createdAt" json:"createdAt"`
}
