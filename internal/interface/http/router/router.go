// Package router 组装gin引擎:全局中间件、业务路由、运维路由
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Book     *handler.BookHandler
	Author   *handler.AuthorHandler
	User     *handler.UserHandler
	Cart     *handler.CartHandler
	Purchase *handler.PurchaseHandler
}

// New 创建Gin引擎并注册路由
//
// 中间件顺序：Recovery → Logger(生成request_id) → Metrics → CORS
// 路径与原有服务保持一致，没有/api/v1前缀
func New(cfg *config.Config, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.CORS))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档：访问 /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	books := r.Group("/books")
	{
		books.POST("", h.Book.CreateBook)
		books.GET("", h.Book.ListBooks)
		books.GET("/:id", h.Book.GetBook)
		books.PUT("/:id", h.Book.UpdateBook)
		books.DELETE("/:id", h.Book.DeleteBook)
	}

	authors := r.Group("/authors")
	{
		authors.POST("", h.Author.CreateAuthor)
		authors.GET("", h.Author.ListAuthors)
		authors.GET("/:id", h.Author.GetAuthor)
		authors.PUT("/:id", h.Author.UpdateAuthor)
		authors.DELETE("/:id", h.Author.DeleteAuthor)
	}

	// gin要求同一层级的路径参数同名，用户相关路由统一用:userId
	users := r.Group("/users")
	{
		users.POST("", h.User.CreateUser)
		users.GET("", h.User.ListUsers)
		users.GET("/:userId", h.User.GetUser)
		users.PUT("/:userId", h.User.UpdateUser)
		users.DELETE("/:userId", h.User.DeleteUser)

		users.POST("/:userId/cart", h.Cart.AddToCart)
		users.GET("/:userId/cart", h.Cart.GetCart)

		history := users.Group("/:userId/purchaseHistory")
		{
			history.POST("", h.Purchase.AddPurchase)
			history.GET("", h.Purchase.ListPurchases)
			history.GET("/:entryId", h.Purchase.GetPurchase)
			history.PUT("/:entryId", h.Purchase.UpdatePurchase)
			history.DELETE("/:entryId", h.Purchase.RemovePurchase)
		}
	}

	return r
}
