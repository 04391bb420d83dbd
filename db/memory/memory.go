// Package memory holds an in-process Database used by tests. Semantics
// mirror db/mysql: listings order by creation time descending with id as a
// tiebreaker, since narrows strictly after, likes hold a user at most once.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	appDb "github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/model"
)

type MemoryDB struct {
	mu      sync.Mutex
	users   []*model.User
	signals []*model.Signal
	posts   []*model.FeedPost
	nextId  int64
	now     func() time.Time
}

func GetDatabase() *MemoryDB {
	return &MemoryDB{
		nextId: 1,
		now:    time.Now,
	}
}

// SetClock swaps the timestamp source so tests can backdate records.
func (mdb *MemoryDB) SetClock(now func() time.Time) {
	mdb.now = now
}

func (mdb *MemoryDB) Close() error {
	return nil
}

func (mdb *MemoryDB) allocId() int64 {
	id := mdb.nextId
	mdb.nextId++
	return id
}

func (mdb *MemoryDB) CreateUser(ctx context.Context, req *appDb.CreateUser) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	user := &model.User{
		Id:           mdb.allocId(),
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		IsPremium:    req.IsPremium,
		Role:         req.Role,
		CreatedAt:    mdb.now(),
	}
	mdb.users = append(mdb.users, user)
	return user.Id, nil
}

func (mdb *MemoryDB) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	for _, user := range mdb.users {
		if user.Id == id {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (mdb *MemoryDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	for _, user := range mdb.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (mdb *MemoryDB) GetUserByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	for _, user := range mdb.users {
		if user.Email == email && user.Role == role {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (mdb *MemoryDB) CreateSignal(ctx context.Context, req *appDb.CreateSignal) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	creator := mdb.findUser(req.CreatorId)
	if creator == nil {
		return 0, fmt.Errorf("creator %v does not exist", req.CreatorId)
	}
	signal := &model.Signal{
		Id:          mdb.allocId(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Creator:     creator.Displayable(),
		CreatedAt:   mdb.now(),
	}
	mdb.signals = append(mdb.signals, signal)
	return signal.Id, nil
}

func (mdb *MemoryDB) GetSignalById(ctx context.Context, id int64) (*model.Signal, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	for _, signal := range mdb.signals {
		if signal.Id == id {
			return copySignal(signal), nil
		}
	}
	return nil, nil
}

func (mdb *MemoryDB) GetSignals(ctx context.Context, query *appDb.SignalsListQuery) ([]*model.Signal, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	signals := make([]*model.Signal, 0, len(mdb.signals))
	for _, signal := range mdb.signals {
		if query.FreeOnly && signal.Type != model.SignalTypeFree {
			continue
		}
		if query.Since != nil && !signal.CreatedAt.After(*query.Since) {
			continue
		}
		signals = append(signals, copySignal(signal))
	}
	sort.Slice(signals, func(i, j int) bool {
		if !signals[i].CreatedAt.Equal(signals[j].CreatedAt) {
			return signals[i].CreatedAt.After(signals[j].CreatedAt)
		}
		return signals[i].Id > signals[j].Id
	})
	return signals, nil
}

func (mdb *MemoryDB) CreateFeedPost(ctx context.Context, req *appDb.CreateFeedPost) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	creator := mdb.findUser(req.CreatorId)
	if creator == nil {
		return 0, fmt.Errorf("creator %v does not exist", req.CreatorId)
	}
	post := &model.FeedPost{
		Id:        mdb.allocId(),
		ImageUrl:  req.ImageUrl,
		Caption:   req.Caption,
		Creator:   creator.Displayable(),
		Likes:     []int64{},
		Comments:  []*model.Comment{},
		CreatedAt: mdb.now(),
	}
	mdb.posts = append(mdb.posts, post)
	return post.Id, nil
}

func (mdb *MemoryDB) GetFeedPostById(ctx context.Context, id int64) (*model.FeedPost, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	post := mdb.findPost(id)
	if post == nil {
		return nil, nil
	}
	return copyFeedPost(post), nil
}

func (mdb *MemoryDB) GetFeedPosts(ctx context.Context, query *appDb.FeedPostsListQuery) ([]*model.FeedPost, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	posts := make([]*model.FeedPost, 0, len(mdb.posts))
	for _, post := range mdb.posts {
		if query.Since != nil && !post.CreatedAt.After(*query.Since) {
			continue
		}
		posts = append(posts, copyFeedPost(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].Id > posts[j].Id
	})
	return posts, nil
}

func (mdb *MemoryDB) ToggleLike(ctx context.Context, postId int64, userId int64) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	post := mdb.findPost(postId)
	if post == nil {
		return nil
	}
	for i, likerId := range post.Likes {
		if likerId == userId {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return nil
		}
	}
	post.Likes = append(post.Likes, userId)
	return nil
}

func (mdb *MemoryDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	post := mdb.findPost(req.PostId)
	if post == nil {
		return 0, fmt.Errorf("post %v does not exist", req.PostId)
	}
	author := mdb.findUser(req.UserId)
	if author == nil {
		return 0, fmt.Errorf("author %v does not exist", req.UserId)
	}
	comment := &model.Comment{
		Id:        mdb.allocId(),
		User:      author.Displayable(),
		Text:      req.Text,
		CreatedAt: mdb.now(),
	}
	post.Comments = append(post.Comments, comment)
	return comment.Id, nil
}

func (mdb *MemoryDB) findUser(id int64) *model.User {
	for _, user := range mdb.users {
		if user.Id == id {
			return user
		}
	}
	return nil
}

func (mdb *MemoryDB) findPost(id int64) *model.FeedPost {
	for _, post := range mdb.posts {
		if post.Id == id {
			return post
		}
	}
	return nil
}

func copyUser(user *model.User) *model.User {
	copied := *user
	return &copied
}

func copySignal(signal *model.Signal) *model.Signal {
	copied := *signal
	return &copied
}

func copyFeedPost(post *model.FeedPost) *model.FeedPost {
	copied := *post
	copied.Likes = append([]int64{}, post.Likes...)
	copied.Comments = append([]*model.Comment{}, post.Comments...)
	return &copied
}
