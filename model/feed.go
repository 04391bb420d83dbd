package model

import "time"

// FeedPost is a social post. Likes hold each liker's user id at most once;
// comments are append-only.
type FeedPost struct {
	Id        int64            `json:"id"`
	ImageUrl  string           `json:"imageUrl"`
	Caption   string           `json:"caption"`
	Creator   *DisplayableUser `json:"creator"`
	Likes     []int64          `json:"likes"`
	Comments  []*Comment       `json:"comments"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (fp *FeedPost) LikedBy(userId int64) bool {
	for _, likerId := range fp.Likes {
		if likerId == userId {
			return true
		}
	}
	return false
}

type Comment struct {
	Id        int64            `json:"id"`
	User      *DisplayableUser `json:"user"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"createdAt"`
}
