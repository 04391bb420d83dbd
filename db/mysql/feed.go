package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	appDb "github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/model"
	"github.com/upper/db/v4"
)

type FeedDB struct {
	sess db.Session
}

func getFeedDB(sess db.Session) *FeedDB {
	return &FeedDB{sess}
}

func (fdb *FeedDB) CreateFeedPost(ctx context.Context, req *appDb.CreateFeedPost) (int64, error) {
	res, err := fdb.sess.SQL().
		InsertInto("feed_posts").
		Columns("image_url", "caption", "creator_id").
		Values(req.ImageUrl, req.Caption, req.CreatorId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedFeedPost struct {
	Id           int64     `db:"id"`
	ImageUrl     string    `db:"image_url"`
	Caption      string    `db:"caption"`
	CreatorId    int64     `db:"creator_id"`
	CreatorEmail string    `db:"creator_email"`
	LikerIdsStr  string    `db:"liker_ids"`
	CreatedAt    time.Time `db:"created_at"`
}

var feedPostColumns = []interface{}{
	"p.id",
	"p.image_url",
	"p.caption",
	"p.created_at",
	"u.id AS creator_id",
	"u.email AS creator_email",
	db.Raw("JSON_ARRAYAGG(l.user_id) AS liker_ids"),
}

func (fdb *FeedDB) GetFeedPostById(ctx context.Context, id int64) (*model.FeedPost, error) {
	var flattened flattenedFeedPost
	if err := fdb.sess.SQL().
		Select(feedPostColumns...).
		From("feed_posts AS p").
		Join("users AS u").On("p.creator_id = u.id").
		LeftJoin("feed_post_likes AS l").On("p.id = l.post_id").
		Where("p.id = ?", id).
		GroupBy("p.id", "u.id").
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	post, err := buildFeedPostFromFlattened(&flattened)
	if err != nil {
		return nil, err
	}
	commentsByPost, err := fdb.getCommentsForPosts(ctx, []int64{post.Id})
	if err != nil {
		return nil, err
	}
	post.Comments = commentsByPost[post.Id]
	return post, nil
}

func (fdb *FeedDB) GetFeedPosts(ctx context.Context, query *appDb.FeedPostsListQuery) ([]*model.FeedPost, error) {
	var flattenedPosts []flattenedFeedPost
	if err := fdb.sess.SQL().
		Select(feedPostColumns...).
		From("feed_posts AS p").
		Join("users AS u").On("p.creator_id = u.id").
		LeftJoin("feed_post_likes AS l").On("p.id = l.post_id").
		Where("(ISNULL(?) OR p.created_at > ?)", query.Since, query.Since).
		GroupBy("p.id", "u.id").
		OrderBy("p.created_at DESC", "p.id DESC").
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}

	posts := make([]*model.FeedPost, len(flattenedPosts))
	postIds := make([]int64, len(flattenedPosts))
	for i, flattened := range flattenedPosts {
		post, err := buildFeedPostFromFlattened(&flattened)
		if err != nil {
			return nil, err
		}
		posts[i] = post
		postIds[i] = post.Id
	}
	if len(posts) == 0 {
		return posts, nil
	}

	commentsByPost, err := fdb.getCommentsForPosts(ctx, postIds)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.Comments = commentsByPost[post.Id]
	}
	return posts, nil
}

func buildFeedPostFromFlattened(post *flattenedFeedPost) (*model.FeedPost, error) {
	// JSON_ARRAYAGG over the left join yields [null] for posts with no likes
	var rawLikerIds []*int64
	if err := json.Unmarshal([]byte(post.LikerIdsStr), &rawLikerIds); err != nil {
		return nil, err
	}
	likes := make([]int64, 0, len(rawLikerIds))
	for _, likerId := range rawLikerIds {
		if likerId != nil {
			likes = append(likes, *likerId)
		}
	}

	return &model.FeedPost{
		Id:       post.Id,
		ImageUrl: post.ImageUrl,
		Caption:  post.Caption,
		Creator: &model.DisplayableUser{
			Id:    post.CreatorId,
			Email: post.CreatorEmail,
		},
		Likes:     likes,
		Comments:  []*model.Comment{},
		CreatedAt: post.CreatedAt,
	}, nil
}

type flattenedComment struct {
	Id          int64     `db:"id"`
	PostId      int64     `db:"post_id"`
	Text        string    `db:"text"`
	AuthorId    int64     `db:"author_id"`
	AuthorEmail string    `db:"author_email"`
	CreatedAt   time.Time `db:"created_at"`
}

func (fdb *FeedDB) getCommentsForPosts(ctx context.Context, postIds []int64) (map[int64][]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := fdb.sess.SQL().
		Select("c.id", "c.post_id", "c.text", "c.created_at", "u.id AS author_id", "u.email AS author_email").
		From("comments AS c").
		Join("users AS u").On("c.user_id = u.id").
		Where("c.post_id IN ?", postIds).
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	commentsByPost := make(map[int64][]*model.Comment)
	for _, flattened := range flattenedComments {
		commentsByPost[flattened.PostId] = append(commentsByPost[flattened.PostId], &model.Comment{
			Id: flattened.Id,
			User: &model.DisplayableUser{
				Id:    flattened.AuthorId,
				Email: flattened.AuthorEmail,
			},
			Text:      flattened.Text,
			CreatedAt: flattened.CreatedAt,
		})
	}
	return commentsByPost, nil
}

func (fdb *FeedDB) ToggleLike(ctx context.Context, postId int64, userId int64) error {
	return fdb.sess.TxContext(ctx, func(sess db.Session) error {
		row, err := sess.SQL().QueryRowContext(ctx, `SELECT user_id FROM feed_post_likes
																WHERE post_id = ? AND user_id = ?
															FOR UPDATE`,
			postId, userId)
		if err != nil {
			return err
		}
		var existing int64
		if err := row.Scan(&existing); err != nil {
			if err != sql.ErrNoRows {
				return err
			}
			_, err := sess.SQL().
				InsertInto("feed_post_likes").
				Columns("post_id", "user_id").
				Values(postId, userId).
				ExecContext(ctx)
			return err
		}
		_, err = sess.SQL().
			DeleteFrom("feed_post_likes").
			Where("post_id = ? AND user_id = ?", postId, userId).
			ExecContext(ctx)
		return err
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (fdb *FeedDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	res, err := fdb.sess.SQL().
		InsertInto("comments").
		Columns("post_id", "user_id", "text").
		Values(req.PostId, req.UserId, req.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
