package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/middleware"
	"github.com/signalroom/signalroom-be/model"
	"github.com/signalroom/signalroom-be/services"
	"github.com/signalroom/signalroom-be/util"
)

var postNotFoundHTTPErr = util.HTTPError{
	Status:  http.StatusNotFound,
	Message: "post not found",
}

type feedRoutes struct {
	db db.Database
}

func AddFeedRoutes(group *gin.RouterGroup, database db.Database, tokens *services.TokenService) {
	routes := feedRoutes{database}
	feed := group.Group("/feed", middleware.Auth(database, tokens))
	feed.GET("", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
	feed.POST("", middleware.RequireAdmin(), util.HandlerWrapper(routes.createFeedPost, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	feed.POST("/:id/like", util.HandlerWrapper(routes.toggleLike, &util.HandlerOpts{}))
	feed.POST("/:id/comment", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
}

type createFeedPostReq struct {
	ImageUrl string `json:"imageUrl" binding:"required"`
	Caption  string `json:"caption" binding:"required"`
}

func (fr *feedRoutes) createFeedPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createFeedPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	id, err := fr.db.CreateFeedPost(c, &db.CreateFeedPost{
		ImageUrl:  req.ImageUrl,
		Caption:   util.XSSSanitize(req.Caption),
		CreatorId: middleware.MustGetUser(c).Id,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return fr.fetchPost(c, id)
}

func (fr *feedRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	since, httpErr := parseSinceQuery(c)
	if httpErr != nil {
		return nil, httpErr
	}
	posts, err := fr.db.GetFeedPosts(c, &db.FeedPostsListQuery{Since: since})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return posts, nil
}

// toggleLike flips the caller's membership in the post's likes and returns
// the updated post.
func (fr *feedRoutes) toggleLike(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if _, httpErr := fr.fetchPost(c, postId); httpErr != nil {
		return nil, httpErr
	}
	if err := fr.db.ToggleLike(c, postId, middleware.MustGetUser(c).Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return fr.fetchPost(c, postId)
}

type addCommentReq struct {
	Text string `json:"text" binding:"required"`
}

func (fr *feedRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req addCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if _, httpErr := fr.fetchPost(c, postId); httpErr != nil {
		return nil, httpErr
	}
	if _, err := fr.db.CreateComment(c, &db.CreateComment{
		PostId: postId,
		UserId: middleware.MustGetUser(c).Id,
		Text:   util.XSSSanitize(req.Text),
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return fr.fetchPost(c, postId)
}

func (fr *feedRoutes) fetchPost(c *gin.Context, id int64) (*model.FeedPost, *util.HTTPError) {
	post, err := fr.db.GetFeedPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, &postNotFoundHTTPErr
	}
	return post, nil
}
