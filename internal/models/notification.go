package models

import (
	"strconv"
	"time"
)

// Notification verbs. The verb decides what the target refers to: a Follow
// targets a user, a Like or Comment targets a post.
const (
	VerbFollow  = "follow"
	VerbLike    = "like"
	VerbComment = "comment"
)

// Target types, derived from the verb by the constructors below.
const (
	TargetUser = "user"
	TargetPost = "post"
)

// Notification represents a recorded event directed at a recipient.
// IsRead only ever transitions false -> true; there is no un-read operation.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Verb        string    `json:"verb" gorm:"size:30;index"`
	TargetType  string    `json:"target_type" gorm:"size:20"`
	TargetID    string    `json:"target_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func NewFollowNotification(actor *User, recipientID uint) *Notification {
	return &Notification{
		RecipientID: recipientID,
		ActorID:     actor.ID,
		Verb:        VerbFollow,
		TargetType:  TargetUser,
		TargetID:    strconv.FormatUint(uint64(actor.ID), 10),
		Message:     actor.Username + " started following you",
	}
}

func NewLikeNotification(actor *User, recipientID uint, postID string) *Notification {
	return &Notification{
		RecipientID: recipientID,
		ActorID:     actor.ID,
		Verb:        VerbLike,
		TargetType:  TargetPost,
		TargetID:    postID,
		Message:     actor.Username + " liked your post",
	}
}

func NewCommentNotification(actor *User, recipientID uint, postID string) *Notification {
	return &Notification{
		RecipientID: recipientID,
		ActorID:     actor.ID,
		Verb:        VerbComment,
		TargetType:  TargetPost,
		TargetID:    postID,
		Message:     actor.Username + " commented on your post",
	}
}
