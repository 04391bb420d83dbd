package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/signalroom/signalroom-be/controllers"
	"github.com/signalroom/signalroom-be/model"
	"github.com/signalroom/signalroom-be/util"
)

type authRoutes struct {
	controller *controllers.AuthController
}

func AddAuthRoutes(group *gin.RouterGroup, controller *controllers.AuthController) {
	routes := authRoutes{controller}
	auth := group.Group("/auth")
	auth.POST("/user/signup", util.HandlerWrapper(routes.userSignup, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	auth.POST("/admin/signup", util.HandlerWrapper(routes.adminSignup, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	auth.POST("/user/login", util.HandlerWrapper(routes.userLogin, &util.HandlerOpts{}))
	auth.POST("/admin/login", util.HandlerWrapper(routes.adminLogin, &util.HandlerOpts{}))
	auth.POST("/logout", util.HandlerWrapper(routes.logout, &util.HandlerOpts{}))
}

type signupReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	IsPremium bool   `json:"isPremium"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ar *authRoutes) userSignup(c *gin.Context) (interface{}, *util.HTTPError) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	result, httpErr := ar.controller.Signup(c, &controllers.Signup{
		Email:     req.Email,
		Password:  req.Password,
		IsPremium: req.IsPremium,
		Role:      model.RoleUser,
	})
	if httpErr != nil {
		return nil, httpErr
	}
	return buildAuthPayload(result), nil
}

func (ar *authRoutes) adminSignup(c *gin.Context) (interface{}, *util.HTTPError) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	result, httpErr := ar.controller.Signup(c, &controllers.Signup{
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleAdmin,
	})
	if httpErr != nil {
		return nil, httpErr
	}
	return buildAuthPayload(result), nil
}

func (ar *authRoutes) userLogin(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.login(c, model.RoleUser)
}

func (ar *authRoutes) adminLogin(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.login(c, model.RoleAdmin)
}

func (ar *authRoutes) login(c *gin.Context, role model.Role) (interface{}, *util.HTTPError) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	result, httpErr := ar.controller.Login(c, req.Email, req.Password, role)
	if httpErr != nil {
		return nil, httpErr
	}
	return buildAuthPayload(result), nil
}

// logout is stateless: tokens stay valid until natural expiry.
func (ar *authRoutes) logout(c *gin.Context) (interface{}, *util.HTTPError) {
	return gin.H{
		"message": "logged out; discard the token client-side",
	}, nil
}

func buildAuthPayload(result *controllers.AuthResult) gin.H {
	return gin.H{
		"token": result.Token,
		"user":  buildUserPayload(result.User),
	}
}

// buildUserPayload shapes the user for auth responses: admins report their
// role, users their tier flag. The password hash never serializes either way.
func buildUserPayload(user *model.User) gin.H {
	if user.Role == model.RoleAdmin {
		return gin.H{
			"id":    user.Id,
			"email": user.Email,
			"role":  user.Role,
		}
	}
	return gin.H{
		"id":        user.Id,
		"email":     user.Email,
		"isPremium": user.IsPremium,
	}
}
