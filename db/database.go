package db

import (
	"context"
	"time"

	"github.com/signalroom/signalroom-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	UserDatabase
	SignalDatabase
	FeedDatabase
	Close() error
}

type CreateUser struct {
	Email        string
	PasswordHash string
	IsPremium    bool
	Role         model.Role
}

type CreateSignal struct {
	Title       string
	Description string
	Type        model.SignalType
	CreatorId   int64
}

type CreateFeedPost struct {
	ImageUrl  string
	Caption   string
	CreatorId int64
}

type CreateComment struct {
	PostId int64
	UserId int64
	Text   string
}

// SignalsListQuery narrows the signal listing. Since is exclusive
// (strictly after); nil means no lower bound. FreeOnly hides premium
// signals from non-premium users.
type SignalsListQuery struct {
	Since    *time.Time
	FreeOnly bool
}

type FeedPostsListQuery struct {
	Since *time.Time
}

type UserDatabase interface {
	CreateUser(ctx context.Context, req *CreateUser) (userId int64, err error)
	GetUserById(ctx context.Context, id int64) (*model.User, error)
	// GetUserByEmail looks an email up across all roles
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error)
}

type SignalDatabase interface {
	CreateSignal(ctx context.Context, req *CreateSignal) (signalId int64, err error)
	GetSignalById(ctx context.Context, id int64) (*model.Signal, error)
	GetSignals(ctx context.Context, query *SignalsListQuery) ([]*model.Signal, error)
}

type FeedDatabase interface {
	CreateFeedPost(ctx context.Context, req *CreateFeedPost) (postId int64, err error)
	GetFeedPostById(ctx context.Context, id int64) (*model.FeedPost, error)
	GetFeedPosts(ctx context.Context, query *FeedPostsListQuery) ([]*model.FeedPost, error)
	// ToggleLike flips userId's membership in the post's likes
	ToggleLike(ctx context.Context, postId int64, userId int64) error
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
}
