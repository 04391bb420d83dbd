package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/middleware"
	"github.com/signalroom/signalroom-be/model"
	"github.com/signalroom/signalroom-be/services"
	"github.com/signalroom/signalroom-be/util"
)

type signalRoutes struct {
	db db.Database
}

func AddSignalRoutes(group *gin.RouterGroup, database db.Database, tokens *services.TokenService) {
	routes := signalRoutes{database}
	signals := group.Group("/signals", middleware.Auth(database, tokens))
	signals.GET("", util.HandlerWrapper(routes.getSignals, &util.HandlerOpts{}))
	signals.POST("", middleware.RequireAdmin(), util.HandlerWrapper(routes.createSignal, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
}

type createSignalReq struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Type        model.SignalType `json:"type" binding:"required"`
}

func (sr *signalRoutes) createSignal(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createSignalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if !req.Type.Valid() {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "type must be one of 'free' or 'premium'",
		}
	}
	id, err := sr.db.CreateSignal(c, &db.CreateSignal{
		Title:       util.XSSSanitize(req.Title),
		Description: util.XSSSanitize(req.Description),
		Type:        req.Type,
		CreatorId:   middleware.MustGetUser(c).Id,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	signal, err := sr.db.GetSignalById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return signal, nil
}

// getSignals lists signals newest first. Non-premium users only ever see
// free signals; premium users see everything.
func (sr *signalRoutes) getSignals(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	since, httpErr := parseSinceQuery(c)
	if httpErr != nil {
		return nil, httpErr
	}
	signals, err := sr.db.GetSignals(c, &db.SignalsListQuery{
		Since:    since,
		FreeOnly: !user.IsPremium,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return signals, nil
}

func parseSinceQuery(c *gin.Context) (*time.Time, *util.HTTPError) {
	raw := c.Query("since")
	if raw == "" {
		return nil, nil
	}
	since, err := util.ParseTime(raw)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "since must be an RFC3339 timestamp",
		}
	}
	return &since, nil
}
