package service

// Feed event types pushed to connected social clients
const (
	FeedPostCreated    = "post.created"
	FeedPostLiked      = "post.liked"
	FeedPostUnliked    = "post.unliked"
	FeedCommentCreated = "comment.created"
)

// FeedBroadcaster fans an event out to every connected feed client
type FeedBroadcaster interface {
	Broadcast(eventType string, payload interface{})
}

type noopFeedBroadcaster struct{}

func (noopFeedBroadcaster) Broadcast(string, interface{}) {}

// LikeEvent is the payload of post.liked and post.unliked
type LikeEvent struct {
	PostID     uint  `json:"postId"`
	UserID     uint  `json:"userId"`
	LikesCount int64 `json:"likesCount"`
}
