//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：
// Repositories(按storage.driver) ← Service ← UseCase ← Handler ← router.Handlers ← *gin.Engine

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauthor "github.com/xiebiao/bookshop/internal/application/author"
	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	apppurchase "github.com/xiebiao/bookshop/internal/application/purchase"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
)

// infrastructureSet 存储和消息队列
// 仓储接口从Repositories的字段取出
var infrastructureSet = wire.NewSet(
	provideRepositories,
	wire.FieldsOf(new(*Repositories), "Authors", "Books", "Users", "Carts"),
	providePublisher,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	author.NewService,
	book.NewService,
	user.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	appauthor.NewCreateAuthorUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewGetAuthorUseCase,
	appauthor.NewUpdateAuthorUseCase,
	appauthor.NewDeleteAuthorUseCase,

	appuser.NewCreateUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewUpdateUserUseCase,
	appuser.NewDeleteUserUseCase,

	appcart.NewAddToCartUseCase,
	appcart.NewGetCartUseCase,

	apppurchase.NewAddPurchaseUseCase,
	apppurchase.NewListPurchasesUseCase,
	apppurchase.NewGetPurchaseUseCase,
	apppurchase.NewUpdatePurchaseUseCase,
	apppurchase.NewRemovePurchaseUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewUserHandler,
	handler.NewCartHandler,
	handler.NewPurchaseHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序释放MQ连接、Redis和数据库连接
func InitializeApp(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		handlerSet,
		router.New,
	)
	return nil, nil, nil
}
